package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

// isoDurationRegex matches ISO-8601 durations as the Data API returns them,
// e.g. "PT1H23M45S". Date components never occur for video lengths.
var isoDurationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Duration is a video length split into clock components.
// Valid is false when no component was present in the source value.
type Duration struct {
	Hours   int
	Minutes int
	Seconds int
	Valid   bool
}

// ParseISODuration parses an ISO-8601 duration string ("PT1H23M45S").
// Unparseable input and a duration with no components both yield an
// invalid Duration, which renders as the empty string.
func ParseISODuration(s string) Duration {
	m := isoDurationRegex.FindStringSubmatch(s)
	if m == nil {
		return Duration{}
	}

	var d Duration
	for i, dst := range []*int{&d.Hours, &d.Minutes, &d.Seconds} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Duration{}
		}
		*dst = n
		d.Valid = true
	}
	return d
}

// String renders the duration as "H:MM:SS" when hours are present, else
// "M:SS". Minutes and seconds are zero-padded to two digits, hours are not.
// An invalid duration renders as "".
func (d Duration) String() string {
	if !d.Valid {
		return ""
	}
	if d.Hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
	}
	return fmt.Sprintf("%d:%02d", d.Minutes, d.Seconds)
}
