// Package stats renders the post-encode report.
package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ideamans/go-l10n"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/user/webm/pkg/plan"
	"github.com/user/webm/pkg/ports"
	"github.com/user/webm/pkg/timefmt"
)

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Output filename":      "出力ファイル名",
		"Output filepath":      "出力パス",
		"Output duration":      "出力の長さ",
		"Output video bitrate": "出力ビデオビットレート",
		"Output audio bitrate": "出力オーディオビットレート",
		"Output file size":     "出力ファイルサイズ",
		"Size vs limit":        "サイズ制限との差",
		"Overall time spent":   "合計処理時間",
	})
}

// Report prints the encode outcome as a table on the log's raw channel.
// The filepath row is shell-quoted so it can be pasted into a command
// line as-is.
func Report(log ports.Logger, p *plan.Plan, elapsed time.Duration) error {
	fi, err := os.Stat(p.OutPath)
	if err != nil {
		return fmt.Errorf("stat output file: %w", err)
	}
	size := fi.Size()

	abs, err := filepath.Abs(p.OutPath)
	if err != nil {
		abs = p.OutPath
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	add := func(label, value string) {
		tw.AppendRow(table.Row{l10n.T(label), value})
	}

	add("Output filename", filepath.Base(p.OutPath))
	add("Output filepath", shellQuote(abs))
	add("Output duration", timefmt.Format(p.OutDuration))
	add("Output video bitrate", fmt.Sprintf("%gk", p.VideoKbps))
	add("Output audio bitrate", fmt.Sprintf("%gk", p.Audio.Kbps))
	add("Output file size", sizeInfo(size))
	if p.Size.ByLimit() {
		if delta := sizeDelta(size, p.Size.LimitMiB); delta != "" {
			add("Size vs limit", delta)
		}
	}
	add("Overall time spent", timefmt.Format(elapsed.Seconds()))

	log.Raw(tw.Render())
	return nil
}

func sizeInfo(size int64) string {
	info := fmt.Sprintf("%s B", humanize.Comma(size))
	if size >= 1024 {
		info += fmt.Sprintf(" (%s)", humanize.IBytes(uint64(size)))
	}
	return info
}

// sizeDelta reports how far the file landed from the byte limit; the
// rate control overshooting the limit is the thing the user most wants
// to know.
func sizeDelta(size int64, limitMiB float64) string {
	limit := int64(limitMiB * 1024 * 1024)
	switch {
	case size > limit:
		return fmt.Sprintf("OVERWEIGHT: %s B", humanize.Comma(size-limit))
	case size < limit:
		return fmt.Sprintf("underweight: %s B", humanize.Comma(limit-size))
	default:
		return ""
	}
}

func shellQuote(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, `'`, `'\''`)
	return "'" + path + "'"
}
