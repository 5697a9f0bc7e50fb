package match

import "time"

type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusLive     Status = "LIVE"
	StatusFinished Status = "FINISHED"
)

// LiveWindow is how long a match counts as LIVE after kickoff: 90
// minutes of play plus stoppage and halftime buffer.
const LiveWindow = 110 * time.Minute

// Classify derives the status of a match from the current instant and
// its kickoff. Both boundaries are half-open: the instant equal to
// kickoff is LIVE, the instant equal to kickoff+LiveWindow is FINISHED.
func Classify(now, kickoff time.Time) Status {
	switch {
	case now.Before(kickoff):
		return StatusUpcoming
	case now.Before(kickoff.Add(LiveWindow)):
		return StatusLive
	default:
		return StatusFinished
	}
}

// rank orders statuses along the natural forward progression.
func (s Status) rank() int {
	switch s {
	case StatusUpcoming:
		return 0
	case StatusLive:
		return 1
	case StatusFinished:
		return 2
	default:
		return -1
	}
}

// Before reports whether s precedes other in the natural
// UPCOMING -> LIVE -> FINISHED progression.
func (s Status) Before(other Status) bool {
	return s.rank() < other.rank()
}
