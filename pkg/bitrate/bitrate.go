// Package bitrate derives the target video bitrate from a size limit.
package bitrate

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnattainable reports that no useful video bitrate fits the size
// limit: either the limit is too low, the output too long, or the audio
// track eats the whole budget. The fix is on the user's side, so this
// is a hard failure rather than a clamp.
var ErrUnattainable = errors.New("unable to calculate video bitrate for the given limit")

// ForLimit computes the target video bitrate in kbits for a size limit
// in mebibytes, an output duration in seconds and an audio bitrate in
// kbits. The result is truncated to one decimal; anything below
// 0.1 kbits is considered useless and fails.
func ForLimit(limitMiB, outDuration, audioKbps float64) (float64, error) {
	kbits := limitMiB * 8 * 1024
	vb := kbits/outDuration - audioKbps
	vb = math.Trunc(vb*10) / 10
	if vb < 0.1 {
		return 0, fmt.Errorf(
			"%w (limit %gMiB, duration %gs, audio %gk)",
			ErrUnattainable, limitMiB, outDuration, audioKbps)
	}
	return vb, nil
}
