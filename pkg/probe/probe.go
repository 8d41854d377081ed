// Package probe extracts the input duration and descriptive metadata
// from the external encoder's diagnostic output and derives the output
// duration from the requested time window.
package probe

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/user/webm/pkg/plan"
	"github.com/user/webm/pkg/ports"
	"github.com/user/webm/pkg/timefmt"
)

var (
	// ErrDurationUnparsable reports that the encoder's diagnostics did
	// not contain a recognizable duration line.
	ErrDurationUnparsable = errors.New("failed to parse duration of input file")
	// ErrSeekPastEnd reports a start offset beyond the input duration.
	ErrSeekPastEnd = errors.New("input seek position past the end of input")
	// ErrZeroDuration reports an explicit duration of zero.
	ErrZeroDuration = errors.New("duration must not be zero")
	// ErrEndPastInputEnd reports an end position beyond the input duration.
	ErrEndPastInputEnd = errors.New("end position too far in the future")
	// ErrEndBeforeStart reports an end position at or before the start
	// offset.
	ErrEndBeforeStart = errors.New("end position is less or equal than the input seek")
)

var (
	durationRe = regexp.MustCompile(`(?m)^\s+Duration: ([^,]+)`)
	titleRe    = regexp.MustCompile(`(?mi)^\s*title\s*:\s*(.+)$`)
	albumRe    = regexp.MustCompile(`(?mi)^\s*album\s*:\s*(.+)$`)
)

// Run probes the plan's main input and fills in the derived duration
// and title fields. The encoder is invoked in info mode (`-i` with no
// output); its non-zero exit status is expected and ignored, only the
// diagnostic text matters.
func Run(ctx context.Context, enc ports.Encoder, p *plan.Plan) error {
	res, err := enc.Output(ctx, []string{"-hide_banner", "-i", p.MainInput()})
	if err != nil {
		return err
	}

	info, err := ParseInfo(res.Stderr)
	if err != nil {
		return err
	}
	p.InDuration = info.Duration
	p.InTitle = info.Title

	out, err := OutputDuration(info.Duration, p.Start, p.Duration, p.End)
	if err != nil {
		return err
	}
	p.OutDuration = out
	return nil
}

// Info is the data recovered from one probe invocation.
type Info struct {
	Duration float64
	Title    string
}

// ParseInfo scans the freeform diagnostic text for the duration and
// title/album metadata lines. Album metadata is folded into the title
// ("album - title") so cover-mode outputs inherit a usable name.
func ParseInfo(diagnostics string) (Info, error) {
	m := durationRe.FindStringSubmatch(diagnostics)
	if m == nil {
		return Info{}, ErrDurationUnparsable
	}
	dur, err := timefmt.Parse(m[1])
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrDurationUnparsable, err)
	}

	info := Info{Duration: dur}
	if tm := titleRe.FindStringSubmatch(diagnostics); tm != nil {
		info.Title = tm[1]
		if am := albumRe.FindStringSubmatch(diagnostics); am != nil {
			info.Title = am[1] + " - " + info.Title
		}
	}
	return info, nil
}

// OutputDuration computes the output duration from the input duration
// and the time-window fields, validating their ranges. End positions
// must be strictly after the start offset.
func OutputDuration(inDuration float64, start, duration, end *float64) (float64, error) {
	shift := 0.0
	if start != nil {
		shift = *start
		if shift > inDuration {
			return 0, fmt.Errorf("%w: seek %s, input is only %s long",
				ErrSeekPastEnd, timefmt.Format(shift), timefmt.Format(inDuration))
		}
	}
	switch {
	case duration != nil:
		if *duration == 0 {
			return 0, ErrZeroDuration
		}
		if shift+*duration > inDuration {
			return 0, ErrEndPastInputEnd
		}
		return *duration, nil
	case end != nil:
		if *end > inDuration {
			return 0, fmt.Errorf("%w: end %s, input is only %s long",
				ErrEndPastInputEnd, timefmt.Format(*end), timefmt.Format(inDuration))
		}
		if *end <= shift {
			return 0, ErrEndBeforeStart
		}
		return *end - shift, nil
	default:
		return inDuration - shift, nil
	}
}
