package match

import (
	"testing"
	"time"
)

func TestClassify_Boundaries(t *testing.T) {
	kickoff := time.Date(2026, time.August, 22, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{name: "one second before kickoff", now: kickoff.Add(-time.Second), want: StatusUpcoming},
		{name: "exactly kickoff", now: kickoff, want: StatusLive},
		{name: "one second before window end", now: kickoff.Add(LiveWindow - time.Second), want: StatusLive},
		{name: "exactly window end", now: kickoff.Add(LiveWindow), want: StatusFinished},
		{name: "well after window end", now: kickoff.Add(4 * time.Hour), want: StatusFinished},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.now, kickoff); got != tc.want {
				t.Fatalf("Classify(%s) = %s, want %s", tc.now, got, tc.want)
			}
		})
	}
}

func TestClassify_MonotonicAsNowAdvances(t *testing.T) {
	kickoff := time.Date(2026, time.August, 22, 14, 30, 0, 0, time.UTC)

	previous := StatusUpcoming
	for now := kickoff.Add(-2 * time.Hour); now.Before(kickoff.Add(4 * time.Hour)); now = now.Add(time.Minute) {
		current := Classify(now, kickoff)
		if current.Before(previous) {
			t.Fatalf("status regressed from %s to %s at now=%s", previous, current, now)
		}
		previous = current
	}
	if previous != StatusFinished {
		t.Fatalf("expected FINISHED at end of sweep, got %s", previous)
	}
}

func TestClassify_SameKickoffSameStatus(t *testing.T) {
	now := time.Date(2026, time.August, 22, 15, 0, 0, 0, time.UTC)
	kickoff := now.Add(-30 * time.Minute)

	if a, b := Classify(now, kickoff), Classify(now, kickoff); a != b {
		t.Fatalf("identical inputs produced different statuses: %s vs %s", a, b)
	}
}
