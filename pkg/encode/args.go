// Package encode sequences the analysis and final encoder passes and
// assembles their argument lists from a resolved Plan.
package encode

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/user/webm/pkg/plan"
)

// Pass identifies one of the two encoder invocations.
type Pass int

const (
	// AnalysisPass gathers rate-control statistics without producing
	// real output.
	AnalysisPass Pass = 1
	// FinalPass produces the muxed output file.
	FinalPass Pass = 2
)

// Spec carries the per-invocation parameters that are not part of the
// Plan itself.
type Spec struct {
	Pass Pass
	// TwoPass selects the shared statistics log protocol; false means
	// a lone final pass with no pass flags at all.
	TwoPass bool
	// PassLogBase is the statistics log path without its "-0.log"
	// suffix, as the encoder expects it.
	PassLogBase string
	// OutPath overrides the plan's output (the discard sink for the
	// analysis pass).
	OutPath string
	Threads int
	Verbose bool
}

// argBuilder accumulates argument groups and serializes them in the
// fixed order the encoder is sensitive to: input flags, stream maps,
// pass bookkeeping, video codec and rate control, filter chain, audio,
// metadata, raw pass-through, output.
type argBuilder struct {
	input    []string
	mapping  []string
	misc     []string
	codec    []string
	filter   []string
	audio    []string
	metadata []string
	raw      []string
	output   []string
}

func (b *argBuilder) serialize() []string {
	args := make([]string, 0, 64)
	for _, group := range [][]string{
		b.input, b.mapping, b.misc, b.codec, b.filter,
		b.audio, b.metadata, b.raw, b.output,
	} {
		args = append(args, group...)
	}
	return args
}

// BuildArgs constructs the complete encoder argument list for one pass
// of the given plan.
func BuildArgs(p *plan.Plan, spec Spec) []string {
	b := &argBuilder{}
	buildInput(b, p)
	buildMapping(b, p)
	buildMisc(b, p, spec)
	buildCodec(b, p, spec)
	buildFilters(b, p)
	buildAudio(b, p, spec)
	buildMetadata(b, p, spec)
	if p.RawOpts != "" {
		b.raw = plan.SplitArgs(p.RawOpts)
	}
	b.output = []string{"-f", "webm", "-y", spec.OutPath}
	return b.serialize()
}

func buildInput(b *argBuilder, p *plan.Plan) {
	b.input = append(b.input, "-hide_banner")
	if p.Start != nil {
		b.input = append(b.input, "-ss", formatSeconds(*p.Start))
	}
	if p.Cover {
		loop := p.CoverLoop
		if loop == "" {
			loop = "-r 1 -loop 1"
		}
		b.input = append(b.input, plan.SplitArgs(loop)...)
	}
	if p.RawPreInput != "" {
		b.input = append(b.input, plan.SplitArgs(p.RawPreInput)...)
	}
	b.input = append(b.input, "-i", p.Input)
	if p.RawPostInput != "" {
		b.input = append(b.input, plan.SplitArgs(p.RawPostInput)...)
	}
	if p.AudioFile != "" {
		b.input = append(b.input, "-i", p.AudioFile)
	}
	// The output duration is passed explicitly only when it was shaped
	// by the user (or by cover mode, which otherwise loops forever).
	if p.Duration != nil || p.End != nil || p.Cover {
		b.input = append(b.input, "-t", formatSeconds(p.OutDuration))
	}
}

func buildMapping(b *argBuilder, p *plan.Plan) {
	if p.VideoStream == "" && p.AudioStream == "" && p.AudioFile == "" {
		return
	}
	vstream := p.VideoStream
	if vstream == "" {
		vstream = "v:0"
	}
	if !strings.HasPrefix(vstream, "[") {
		vstream = "0:" + vstream
	}
	b.mapping = append(b.mapping, "-map", vstream)

	ainput := "0"
	if p.AudioFile != "" {
		ainput = "1"
	}
	astream := p.AudioStream
	if astream == "" {
		astream = "a:0"
	}
	if !strings.HasPrefix(astream, "[") {
		astream = ainput + ":" + astream
	}
	b.mapping = append(b.mapping, "-map", astream)
}

func buildMisc(b *argBuilder, p *plan.Plan, spec Spec) {
	if spec.TwoPass {
		b.misc = append(b.misc,
			"-pass", strconv.Itoa(int(spec.Pass)),
			"-passlogfile", spec.PassLogBase)
	}
	b.misc = append(b.misc, "-sn")
	if spec.Verbose {
		b.misc = append(b.misc, "-loglevel", "verbose")
	}
}

func buildCodec(b *argBuilder, p *plan.Plan, spec Spec) {
	// The analysis pass can afford a faster speed setting since its
	// only product is the statistics log.
	speed := "1"
	if spec.Pass == AnalysisPass {
		speed = "4"
	}
	vpx := true
	switch p.Codec {
	case plan.CodecVP8:
		// VP8 is fast enough to keep the best speed on both passes.
		b.codec = append(b.codec, "-c:v", "libvpx", "-speed", "0")
	case plan.CodecAV1:
		vpx = false
		b.codec = append(b.codec,
			"-c:v", "libaom-av1", "-cpu-used", speed,
			"-row-mt", "1", "-tile-columns", "1")
	default:
		b.codec = append(b.codec,
			"-c:v", "libvpx-vp9", "-speed", speed,
			"-tile-columns", "6", "-frame-parallel", "0")
	}
	b.codec = append(b.codec,
		"-b:v", formatKbps(p.VideoKbps),
		"-threads", strconv.Itoa(spec.Threads))
	if vpx {
		// Forced on for VP9 anyway; the bigger lag window helps the
		// rate control fit the limit.
		b.codec = append(b.codec, "-auto-alt-ref", "1", "-lag-in-frames", "25")
	}
	b.codec = append(b.codec,
		// Keyframe interval beyond any realistic clip length saves a
		// little bitrate over the 128 default.
		"-g", "9999",
		// Other subsamplings need profile>0 which decoder support is
		// still poor for. Overridable through the raw options.
		"-pix_fmt", "yuv420p")
	if p.CRF != nil {
		b.codec = append(b.codec, "-crf", strconv.Itoa(*p.CRF))
	}
	if p.QMin != nil {
		b.codec = append(b.codec, "-qmin", strconv.Itoa(*p.QMin))
	}
	if p.QMax != nil {
		b.codec = append(b.codec, "-qmax", strconv.Itoa(*p.QMax))
	}
}

func buildFilters(b *argBuilder, p *plan.Plan) {
	chain := FilterChain(p)
	if chain != "" {
		b.filter = append(b.filter, "-vf", chain)
	}
}

func buildAudio(b *argBuilder, p *plan.Plan, spec Spec) {
	if spec.Pass == AnalysisPass || p.Audio.Kind == plan.AudioDisabledMode {
		b.audio = append(b.audio, "-an")
		return
	}
	if p.Audio.Kind == plan.AudioCopyMode {
		b.audio = append(b.audio, "-c:a", "copy")
		return
	}
	b.audio = append(b.audio, "-ac", "2")
	if p.Audio.Kind == plan.AudioQualityMode {
		b.audio = append(b.audio, "-c:a", "libvorbis", "-q:a", strconv.Itoa(p.Audio.Quality))
	} else {
		b.audio = append(b.audio, "-c:a", "libopus", "-b:a", formatKbps(p.Audio.Kbps))
	}
	if p.AudioFilters != "" {
		b.audio = append(b.audio, "-af", p.AudioFilters)
	}
}

func buildMetadata(b *argBuilder, p *plan.Plan, spec Spec) {
	if spec.Pass == AnalysisPass {
		return
	}
	if p.StripMeta {
		b.metadata = append(b.metadata, "-map_metadata", "-1")
		return
	}
	switch {
	case p.Title != "":
		b.metadata = append(b.metadata, "-metadata", "title="+p.Title)
	case p.Cover && p.InTitle != "":
		b.metadata = append(b.metadata, "-metadata", "title="+p.InTitle)
	}
	if p.StampCreation {
		stamp := time.Now().UTC().Format("2006-01-02 15:04:05")
		b.metadata = append(b.metadata, "-metadata", "creation_time="+stamp)
	}
}

// FilterChain joins the video filter fragments in their fixed order:
// insertion-point filters, the scale filter, the subtitle burn chain
// with its timestamp-shift bracketing, then the user's raw filters.
func FilterChain(p *plan.Plan) string {
	var filters []string
	if p.InsertFilters != "" {
		filters = append(filters, p.InsertFilters)
	}
	if p.Width != 0 || p.Height != 0 {
		w, h := "-1", "-1"
		if p.Width != 0 {
			w = strconv.Itoa(p.Width)
		}
		if p.Height != 0 {
			h = strconv.Itoa(p.Height)
		}
		filters = append(filters, "scale="+w+":"+h)
	}
	if p.Subs.Enabled {
		filters = append(filters, subtitleFilters(p)...)
	}
	if p.VideoFilters != "" {
		filters = append(filters, p.VideoFilters)
	}
	return strings.Join(filters, ",")
}

// subtitleFilters builds the burn-in fragment. When the encode starts
// at an offset or the user delays the subtitles, the stream timestamps
// no longer line up with the subtitle timings, so the burn is bracketed
// by a PTS shift and its reset.
func subtitleFilters(p *plan.Plan) []string {
	shift := 0.0
	if p.Start != nil {
		shift += *p.Start
	}
	if p.SubDelay != nil {
		shift += *p.SubDelay
	}

	var filters []string
	if shift != 0 {
		filters = append(filters, "setpts=PTS+"+formatSeconds(shift)+"/TB")
	}
	subFile := p.Subs.File
	if p.Subs.FromInput {
		subFile = p.Input
	}
	sub := "subtitles=" + escapeFilterArg(subFile)
	if p.SubIndex != nil {
		sub += ":si=" + strconv.Itoa(*p.SubIndex)
	}
	if p.SubStyle != "" {
		sub += ":force_style=" + escapeFilterArg(p.SubStyle)
	}
	filters = append(filters, sub)
	if shift != 0 {
		filters = append(filters, "setpts=PTS-STARTPTS")
	}
	return filters
}

// escapeFilterArg quotes a filter argument following the filtergraph
// escaping rules (see ffmpeg-filters(1), "Notes on filtergraph
// escaping"). The rules are rather mad.
func escapeFilterArg(arg string) string {
	arg = strings.ReplaceAll(arg, `\`, `\\`)
	arg = strings.ReplaceAll(arg, `'`, `'\\\''`)
	arg = strings.ReplaceAll(arg, `:`, `\:`)
	return "'" + arg + "'"
}

// formatSeconds renders seconds rounded to millisecond precision,
// without a trailing zero fraction.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// formatKbps renders a bitrate for the encoder; zero stays a bare "0"
// (constant quality mode), anything else gets the k suffix.
func formatKbps(kbps float64) string {
	if kbps == 0 {
		return "0"
	}
	return strconv.FormatFloat(kbps, 'f', -1, 64) + "k"
}
