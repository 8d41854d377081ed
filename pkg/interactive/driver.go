package interactive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ideamans/go-l10n"

	"github.com/user/webm/pkg/adapters/mpvtool"
	"github.com/user/webm/pkg/plan"
	"github.com/user/webm/pkg/ports"
	"github.com/user/webm/pkg/timefmt"
)

// ErrAborted is returned when the user declines to continue after the
// session.
var ErrAborted = errors.New("aborted by user")

// PlayerError reports a failed player invocation.
type PlayerError struct {
	Stderr string
	Err    error
}

func (e *PlayerError) Error() string {
	return fmt.Sprintf("interactive player: %v", e.Err)
}

func (e *PlayerError) Unwrap() error { return e.Err }

// Driver runs the interactive session and folds its outcome into the
// plan.
type Driver struct {
	player ports.Player
	prompt ports.Prompter
	log    ports.Logger
}

// New creates a session driver.
func New(player ports.Player, prompt ports.Prompter, log ports.Logger) *Driver {
	return &Driver{player: player, prompt: prompt, log: log}
}

// Run spawns the player with the control script, waits for the user to
// close it, and merges the confirmed choices into the plan. The user
// declining at any prompt aborts with ErrAborted.
func (d *Driver) Run(ctx context.Context, p *plan.Plan) error {
	// The player ignores script files without the .lua suffix.
	script, err := os.CreateTemp("", "webm-*.lua")
	if err != nil {
		return fmt.Errorf("creating control script: %w", err)
	}
	scriptPath := script.Name()
	_, werr := script.WriteString(mpvtool.ControlScript)
	if cerr := script.Close(); werr == nil {
		werr = cerr
	}
	defer func() {
		if err := os.Remove(scriptPath); err != nil {
			d.log.Warn("Error during cleanup: %s", err)
		}
	}()
	if werr != nil {
		return fmt.Errorf("writing control script: %w", werr)
	}

	args := []string{"--msg-level", "all=error", "--script", scriptPath}
	if p.PlayerOpts != "" {
		args = append(args, plan.SplitArgs(p.PlayerOpts)...)
	}
	args = append(args, p.Input)

	d.log.Info("Running interactive mode.")
	d.log.Raw(SessionHelp)

	stderr, err := d.player.Run(ctx, args)
	if err != nil {
		return &PlayerError{Stderr: stderr, Err: err}
	}

	ev := ParseEvents(stderr)
	d.summarize(ev)

	if ev.Empty() {
		d.log.Raw(l10n.T("You haven't defined cut/crop or dumped info."))
		if !d.prompt.Confirm(l10n.T("Encode input video intact?"), false) {
			return ErrAborted
		}
		return nil
	}

	if !d.prompt.Confirm(l10n.T("Continue with these settings?"), true) {
		return ErrAborted
	}
	merge(p, ev)
	return nil
}

func (d *Driver) summarize(ev Events) {
	d.log.Raw(strings.Repeat("=", 50))
	if ev.Cut != nil {
		shift := "0"
		if ev.Cut.Start >= 0 {
			shift = timefmt.Format(ev.Cut.Start)
		}
		endpos := "EOF"
		if ev.Cut.End >= 0 {
			endpos = timefmt.Format(ev.Cut.End)
		}
		d.log.Raw(fmt.Sprintf("[CUT] %s - %s (%g - %g)",
			shift, endpos, ev.Cut.Start, ev.Cut.End))
	}
	if ev.Crop != nil {
		d.log.Raw(fmt.Sprintf("[CROP] x1=%d, y1=%d, width=%d, height=%d",
			ev.Crop.X, ev.Crop.Y, ev.Crop.W, ev.Crop.H))
	}
	if ev.Info != nil {
		d.log.Raw("[DUMP] " + strings.Join(infoChanges(ev.Info), ", "))
	}
}

// infoChanges lists the dumped fields that differ from the "nothing
// selected" defaults; only those are merged.
func infoChanges(info *InfoEvent) []string {
	changes := []string{fmt.Sprintf("vs=%d", info.VideoStream)}
	if info.AudioStream != -1 {
		changes = append(changes, fmt.Sprintf("as=%d", info.AudioStream))
	}
	if info.AudioFile != "" {
		changes = append(changes, "aa="+info.AudioFile)
	}
	if info.SubIndex != -1 {
		changes = append(changes, fmt.Sprintf("si=%d", info.SubIndex))
	}
	if info.SubFile != "" {
		changes = append(changes, "sa="+info.SubFile)
	}
	if info.SubDelay != 0 {
		changes = append(changes, fmt.Sprintf("sd=%.2f", info.SubDelay))
	}
	return changes
}

func merge(p *plan.Plan, ev Events) {
	if ev.Cut != nil {
		if ev.Cut.Start >= 0 {
			start := ev.Cut.Start
			p.Start = &start
		}
		if ev.Cut.End >= 0 {
			end := ev.Cut.End
			p.End = &end
		}
	}
	if ev.Crop != nil {
		frag := fmt.Sprintf("crop=%d:%d:%d:%d", ev.Crop.W, ev.Crop.H, ev.Crop.X, ev.Crop.Y)
		if p.InsertFilters == "" {
			p.InsertFilters = frag
		} else {
			p.InsertFilters += "," + frag
		}
	}
	if ev.Info != nil {
		info := ev.Info
		p.VideoStream = strconv.Itoa(info.VideoStream)
		if info.AudioStream != -1 {
			p.AudioStream = strconv.Itoa(info.AudioStream)
		}
		if info.AudioFile != "" {
			p.AudioFile = info.AudioFile
		}
		if info.SubIndex != -1 {
			idx := info.SubIndex
			p.SubIndex = &idx
		}
		switch {
		case info.SubFile != "":
			p.Subs = plan.SubtitleSource{Enabled: true, File: info.SubFile}
		case info.SubIndex != -1:
			// A selected subtitle stream without an external file means
			// the input's own subtitles.
			p.Subs = plan.SubtitleSource{Enabled: true, FromInput: true}
		}
		if info.SubDelay != 0 {
			delay := info.SubDelay
			p.SubDelay = &delay
		}
	}
}
