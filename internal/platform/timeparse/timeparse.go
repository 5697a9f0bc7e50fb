package timeparse

import (
	"regexp"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// Kickoff times are published as civil date/time in a constant UTC+7
// offset. A fixed zone keeps parsing independent of the tzdb and of
// the machine's local timezone; no daylight-saving logic applies.
var kickoffZone = time.FixedZone("UTC+7", 7*60*60)

const kickoffLayout = "02/01/2006 15:04"

var (
	dateShape = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	timeShape = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Zone returns the fixed offset zone used for kickoff computation.
// Display formatting may use it too, but classification never depends
// on anything beyond the parsed instant.
func Zone() *time.Location {
	return kickoffZone
}

// ParseKickoff combines a DD/MM/YYYY date and a 24-hour HH:MM time,
// both zero-padded, into the absolute instant of that civil date-time
// in UTC+7. Malformed input is an error, never silently coerced.
func ParseKickoff(dateValue, timeValue string) (time.Time, error) {
	if !dateShape.MatchString(dateValue) {
		return time.Time{}, crerr.Newf("date %q does not match DD/MM/YYYY", dateValue)
	}
	if !timeShape.MatchString(timeValue) {
		return time.Time{}, crerr.Newf("time %q does not match HH:MM", timeValue)
	}

	parsed, err := time.ParseInLocation(kickoffLayout, dateValue+" "+timeValue, kickoffZone)
	if err != nil {
		return time.Time{}, crerr.Wrapf(err, "parse %q %q", dateValue, timeValue)
	}

	return parsed, nil
}

// FormatLocal renders an instant as civil date-time in the kickoff
// zone, the inverse of ParseKickoff.
func FormatLocal(instant time.Time) string {
	return instant.In(kickoffZone).Format(kickoffLayout)
}
