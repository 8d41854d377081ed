package plan

import (
	"path/filepath"
	"strings"

	"github.com/user/webm/pkg/timefmt"
)

// DeriveOutputPath fills in OutPath when the user gave none: the main
// input's basename, a `_start-end` timestamp suffix when a time window
// was specified, and the .webm extension. Must run after probing since
// an open-ended window borrows the input duration for the suffix.
func (p *Plan) DeriveOutputPath() {
	if p.OutPath != "" {
		return
	}
	name := filepath.Base(p.MainInput())
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if p.HasTimeWindow() {
		shift := 0.0
		if p.Start != nil {
			shift = *p.Start
		}
		var end float64
		switch {
		case p.Duration != nil:
			end = shift + *p.Duration
		case p.End != nil:
			end = *p.End
		default:
			end = p.InDuration
		}
		name += "_" + timefmt.Format(shift) + "-" + timefmt.Format(end)
	}
	p.OutPath = name + ".webm"
}
