package stats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/webm/pkg/plan"
)

// recorder captures raw log lines for inspection.
type recorder struct {
	raw []string
}

func (r *recorder) Debug(msg string, args ...interface{}) {}
func (r *recorder) Info(msg string, args ...interface{})  {}
func (r *recorder) Warn(msg string, args ...interface{})  {}
func (r *recorder) Error(msg string, args ...interface{}) {}
func (r *recorder) Raw(line string)                       { r.raw = append(r.raw, line) }

func writeOutput(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.webm")
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestReport(t *testing.T) {
	rec := &recorder{}
	p := &plan.Plan{
		OutPath:     writeOutput(t, 2048),
		OutDuration: 90,
		VideoKbps:   661.9,
		Audio:       plan.AudioMode{Kind: plan.AudioBitrateMode, Kbps: 64},
		Size:        plan.SizeByLimit(8),
	}

	if err := Report(rec, p, 95*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.raw) != 1 {
		t.Fatalf("expected one rendered table, got %d lines", len(rec.raw))
	}
	out := rec.raw[0]
	for _, want := range []string{
		"clip.webm",
		"00:01:30",
		"661.9k",
		"64k",
		"2,048 B",
		"KiB",
		"underweight",
		"00:01:35",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportOverweight(t *testing.T) {
	rec := &recorder{}
	p := &plan.Plan{
		OutPath: writeOutput(t, 2*1024*1024),
		Size:    plan.SizeByLimit(1),
	}

	if err := Report(rec, p, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.raw[0], "OVERWEIGHT: 1,048,576 B") {
		t.Errorf("report missing overweight delta:\n%s", rec.raw[0])
	}
}

func TestReportNoDeltaForBitrateTarget(t *testing.T) {
	rec := &recorder{}
	p := &plan.Plan{
		OutPath: writeOutput(t, 4096),
		Size:    plan.SizeByBitrate(600),
	}

	if err := Report(rec, p, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := rec.raw[0]
	if strings.Contains(out, "OVERWEIGHT") || strings.Contains(out, "underweight") {
		t.Errorf("bitrate targets have no size limit to compare against:\n%s", out)
	}
}

func TestReportMissingFile(t *testing.T) {
	rec := &recorder{}
	p := &plan.Plan{OutPath: filepath.Join(t.TempDir(), "missing.webm")}
	if err := Report(rec, p, time.Second); err == nil {
		t.Error("expected an error for a missing output file")
	}
}

func TestShellQuote(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/tmp/plain.webm", "'/tmp/plain.webm'"},
		{"/tmp/it's.webm", `'/tmp/it'\''s.webm'`},
	}
	for _, c := range cases {
		if got := shellQuote(c.in); got != c.want {
			t.Errorf("shellQuote(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
