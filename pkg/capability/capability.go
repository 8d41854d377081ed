// Package capability verifies that the external tools are present and
// recent enough before any real work starts.
package capability

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/user/webm/pkg/plan"
	"github.com/user/webm/pkg/ports"
)

// CapabilityError reports a missing or unusable external tool.
type CapabilityError struct {
	Tool string
	Msg  string
	Err  error
}

func (e *CapabilityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Tool, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Tool, e.Msg)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

var (
	ffmpegVersionRe = regexp.MustCompile(`^ffmpeg version (\S+)`)
	mpvVersionRe    = regexp.MustCompile(`^mpv (\S+)`)
	numericRe       = regexp.MustCompile(`^\d+\.\d+\.\d+`)
)

// CheckEncoder verifies the ffmpeg version and that it carries the
// encoders the plan needs.
func CheckEncoder(ctx context.Context, enc ports.Encoder, p *plan.Plan) error {
	res, err := enc.Output(ctx, []string{"-version"})
	if err != nil {
		return &CapabilityError{Tool: "ffmpeg", Msg: "cannot run executable", Err: err}
	}
	line, _, _ := strings.Cut(res.Stdout, "\n")
	m := ffmpegVersionRe.FindStringSubmatch(line)
	if m == nil {
		return &CapabilityError{Tool: "ffmpeg", Msg: "cannot parse version"}
	}
	// Only numeric x.y.z versions are comparable; git builds pass.
	if numericRe.MatchString(m[1]) {
		major, _ := strconv.Atoi(strings.SplitN(m[1], ".", 2)[0])
		if major < 2 {
			return &CapabilityError{
				Tool: "ffmpeg",
				Msg:  fmt.Sprintf("version must be 2+, using: %s", m[1]),
			}
		}
	}

	res, err = enc.Output(ctx, []string{"-hide_banner", "-codecs"})
	if err != nil {
		return &CapabilityError{Tool: "ffmpeg", Msg: "cannot list codecs", Err: err}
	}
	needed := []string{"libvpx", "libvpx-vp9", "libopus"}
	if p.Audio.Kind == plan.AudioQualityMode {
		needed = append(needed, "libvorbis")
	}
	if p.Codec == plan.CodecAV1 {
		needed = append(needed, "libaom-av1")
	}
	for _, encoder := range needed {
		re := regexp.MustCompile(`\bencoders:.*\b` + regexp.QuoteMeta(encoder) + `\b`)
		if !re.MatchString(res.Stdout) {
			return &CapabilityError{
				Tool: "ffmpeg",
				Msg:  fmt.Sprintf("not compiled with %s support", encoder),
			}
		}
	}
	return nil
}

// CheckPlayer verifies the mpv version needed for the interactive
// session's scripting interface.
func CheckPlayer(ctx context.Context, player ports.Player) error {
	res, err := player.Output(ctx, []string{"--version"})
	if err != nil {
		return &CapabilityError{Tool: "mpv", Msg: "cannot run executable", Err: err}
	}
	line, _, _ := strings.Cut(res.Stdout, "\n")
	m := mpvVersionRe.FindStringSubmatch(line)
	if m == nil {
		return &CapabilityError{Tool: "mpv", Msg: "cannot parse version"}
	}
	if numericRe.MatchString(m[1]) {
		parts := strings.SplitN(m[1], ".", 3)
		major, _ := strconv.Atoi(parts[0])
		minor, _ := strconv.Atoi(parts[1])
		if major == 0 && minor < 17 {
			return &CapabilityError{
				Tool: "mpv",
				Msg:  fmt.Sprintf("version must be 0.17+, using: %s", m[1]),
			}
		}
	}
	return nil
}

// Check runs the encoder check and, when a player is supplied for
// interactive mode, the player check.
func Check(ctx context.Context, enc ports.Encoder, player ports.Player, p *plan.Plan) error {
	if err := CheckEncoder(ctx, enc, p); err != nil {
		return err
	}
	if player != nil {
		return CheckPlayer(ctx, player)
	}
	return nil
}
