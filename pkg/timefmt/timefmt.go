// Package timefmt converts between human time notations and numeric
// seconds. The parsing grammar and the truncating formatter are shared
// by option validation, output-file naming and the post-encode report,
// so both directions must stay byte-stable across runs.
package timefmt

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unknown is the duration reported when the container format cannot
// tell how long the input is ("N/A" in the encoder's diagnostics).
const Unknown = float64(math.MaxInt64)

// ErrInvalidTime reports a token that is neither a plain number of
// seconds nor an [[hh:]mm:]ss[.frac] timestamp.
var ErrInvalidTime = errors.New("invalid time format")

var tokenRe = regexp.MustCompile(`^(?:(\d+):)?(?:(\d+):)?(\d+(?:\.\d+)?)$`)

// Parse converts a position/duration token into seconds.
//
// Accepted forms: "75", "75.5", "1:15", "01:02:03.5" and the sentinel
// "N/A" which maps to Unknown.
func Parse(tok string) (float64, error) {
	if tok == "N/A" {
		return Unknown, nil
	}
	m := tokenRe.FindStringSubmatch(tok)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, tok)
	}
	seconds, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, tok)
	}
	parts := strings.Count(tok, ":")
	switch parts {
	case 0:
	case 1:
		// m:ss
		minutes, _ := strconv.Atoi(m[1])
		seconds += float64(minutes) * 60
	case 2:
		// h:mm:ss
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		seconds += float64(minutes)*60 + float64(hours)*3600
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, tok)
	}
	return seconds, nil
}

// Format renders seconds as hh:mm:ss with a fractional part appended
// only when it is at least 0.1 seconds. The fraction is truncated (not
// rounded) to two digits so that repeated runs derive identical output
// filenames.
func Format(seconds float64) string {
	whole := int64(seconds)
	ts := fmt.Sprintf("%02d:%02d:%02d", whole/3600, whole%3600/60, whole%60)
	frac := seconds - float64(whole)
	if frac >= 0.1 {
		// The epsilon compensates for binary representation noise,
		// not for truncation.
		ts += fmt.Sprintf(".%02d", int(frac*100+1e-7))
	}
	return ts
}
