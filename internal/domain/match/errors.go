package match

import "errors"

// Load failure kinds. Any of these for any single league promotes to
// one aggregate load failure: the dashboard shows an error state
// rather than a partially populated schedule.
var (
	ErrFetch = errors.New("league document could not be retrieved")
	ErrShape = errors.New("league document has unexpected shape")
	ErrParse = errors.New("match date/time is malformed")
)
