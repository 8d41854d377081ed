package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/webm/pkg/timefmt"
)

// OptionError reports a user input that violates a documented
// constraint. It is always raised before any external process is
// spawned.
type OptionError struct {
	Rule string
}

func (e *OptionError) Error() string { return e.Rule }

func optErr(format string, args ...interface{}) error {
	return &OptionError{Rule: fmt.Sprintf(format, args...)}
}

// RawOptions mirrors the CLI surface. Every field is independently
// optional; nil pointers and empty strings mean "not specified".
type RawOptions struct {
	Input  string
	Output string

	Start    string
	Duration string
	End      string

	LimitMiB  *float64
	VideoKbps *float64

	VP8 bool
	AV1 bool

	CRF  *int
	QMin *int
	QMax *int

	Width  int
	Height int

	VideoStream   string
	InsertFilters string
	VideoFilters  string

	NoAudio      bool
	CopyAudio    bool
	Opus         bool
	Vorbis       bool
	AudioKbps    *float64
	AudioQuality *int
	AudioFile    string
	AudioStream  string
	AudioFilters string

	SubBurn  bool
	SubFile  string
	SubIndex *int
	SubDelay *float64
	SubStyle string

	Interactive bool
	PlayerOpts  string

	Cover     bool
	CoverLoop string

	Title         string
	TitleSet      bool
	StampCreation bool
	StripMeta     bool

	RawOpts      string
	RawPreInput  string
	RawPostInput string

	SinglePass bool
}

// Resolve validates the raw options and settles them into a coherent
// Plan, or fails with the first violated rule. The checks follow the
// documented order: time window, size/bitrate, quality ranges, codec
// derivation, audio mode, subtitles/metadata, cover/interactive
// exclusivity, output path.
func Resolve(raw RawOptions) (*Plan, error) {
	p := &Plan{
		Input:         raw.Input,
		AudioFile:     raw.AudioFile,
		Cover:         raw.Cover,
		CoverLoop:     raw.CoverLoop,
		Interactive:   raw.Interactive,
		PlayerOpts:    raw.PlayerOpts,
		CRF:           raw.CRF,
		QMin:          raw.QMin,
		QMax:          raw.QMax,
		VideoStream:   raw.VideoStream,
		AudioStream:   raw.AudioStream,
		Width:         raw.Width,
		Height:        raw.Height,
		SubIndex:      raw.SubIndex,
		SubDelay:      raw.SubDelay,
		SubStyle:      raw.SubStyle,
		InsertFilters: raw.InsertFilters,
		VideoFilters:  raw.VideoFilters,
		AudioFilters:  raw.AudioFilters,
		Title:         raw.Title,
		StampCreation: raw.StampCreation,
		StripMeta:     raw.StripMeta,
		RawOpts:       raw.RawOpts,
		RawPreInput:   raw.RawPreInput,
		RawPostInput:  raw.RawPostInput,
		SinglePass:    raw.SinglePass,
		OutPath:       raw.Output,
	}

	if err := resolveTimeWindow(raw, p); err != nil {
		return nil, err
	}
	if err := resolveSizeTarget(raw, p); err != nil {
		return nil, err
	}
	if err := checkQualityRange(raw); err != nil {
		return nil, err
	}
	if err := resolveCodecs(raw, p); err != nil {
		return nil, err
	}
	if err := resolveAudioMode(raw, p); err != nil {
		return nil, err
	}
	if err := resolveSubtitlesAndMetadata(raw, p); err != nil {
		return nil, err
	}
	if err := checkCoverAndInteractive(raw); err != nil {
		return nil, err
	}
	if err := checkOutputPath(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}

func resolveTimeWindow(raw RawOptions, p *Plan) error {
	if raw.Duration != "" && raw.End != "" {
		return optErr("--t and --to are mutually exclusive")
	}
	if raw.Interactive && (raw.Start != "" || raw.Duration != "" || raw.End != "") {
		return optErr("you cannot use --p with --ss, --t, --to")
	}
	parse := func(tok string, dst **float64) error {
		if tok == "" {
			return nil
		}
		v, err := timefmt.Parse(tok)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
	if err := parse(raw.Start, &p.Start); err != nil {
		return err
	}
	if err := parse(raw.Duration, &p.Duration); err != nil {
		return err
	}
	return parse(raw.End, &p.End)
}

func resolveSizeTarget(raw RawOptions, p *Plan) error {
	if raw.VideoKbps == nil {
		limit := 8.0
		if raw.LimitMiB != nil {
			limit = *raw.LimitMiB
			if limit <= 0 {
				return optErr("bad limit value")
			}
		}
		p.Size = SizeByLimit(limit)
		return nil
	}
	if raw.LimitMiB != nil {
		return optErr("--limit and --vb are mutually exclusive")
	}
	if *raw.VideoKbps < 0 {
		return optErr("invalid video bitrate")
	}
	p.Size = SizeByBitrate(*raw.VideoKbps)
	p.VideoKbps = *raw.VideoKbps
	return nil
}

func checkQualityRange(raw RawOptions) error {
	for _, q := range []*int{raw.CRF, raw.QMin, raw.QMax} {
		if q != nil && (*q < 0 || *q > 63) {
			return optErr("video quality level must be in 0..63 range")
		}
	}
	if raw.QMin != nil && raw.QMax != nil && *raw.QMin > *raw.QMax {
		return optErr("minimum quality level greater than maximum level")
	}
	if raw.CRF != nil && (raw.QMin != nil || raw.QMax != nil) {
		qmin, qmax := 0, 63
		if raw.QMin != nil {
			qmin = *raw.QMin
		}
		if raw.QMax != nil {
			qmax = *raw.QMax
		}
		if *raw.CRF < qmin || *raw.CRF > qmax {
			return optErr("qmin <= crf <= qmax relation violated")
		}
	}
	return nil
}

func resolveCodecs(raw RawOptions, p *Plan) error {
	if raw.VP8 && raw.AV1 {
		return optErr("--vp8 and --av1 are mutually exclusive")
	}
	if raw.Opus && raw.Vorbis {
		return optErr("--opus and --vorbis are mutually exclusive")
	}
	switch {
	case raw.VP8:
		p.Codec = CodecVP8
	case raw.AV1:
		p.Codec = CodecAV1
	default:
		p.Codec = CodecVP9
	}
	return nil
}

// useVorbis decides the audio codec: explicit flags win, otherwise the
// companion of the video codec (VP8 brings Vorbis, VP9/AV1 bring Opus).
func useVorbis(raw RawOptions) bool {
	if raw.Vorbis {
		return true
	}
	if raw.Opus {
		return false
	}
	return raw.VP8
}

func resolveAudioMode(raw RawOptions, p *Plan) error {
	if raw.NoAudio {
		if raw.AudioKbps != nil || raw.AudioQuality != nil || raw.AudioFile != "" ||
			raw.AudioStream != "" || raw.AudioFilters != "" || raw.CopyAudio {
			return optErr("you cannot use --an with --ab, --aq, --aa, --as, --af, --acopy")
		}
		p.Audio = AudioMode{Kind: AudioDisabledMode, Kbps: 0}
		return nil
	}
	if raw.CopyAudio {
		if raw.AudioKbps != nil || raw.AudioQuality != nil || raw.AudioFilters != "" {
			return optErr("you cannot use --acopy with --ab, --aq, --af")
		}
		p.Audio = AudioMode{Kind: AudioCopyMode, Kbps: copyAudioKbpsEstimate}
		return nil
	}
	if !useVorbis(raw) {
		if raw.AudioQuality != nil {
			return optErr("you cannot use --aq with --opus")
		}
		kbps := 64.0
		if raw.AudioKbps != nil {
			kbps = *raw.AudioKbps
			if kbps < 1 {
				return optErr("invalid audio bitrate")
			}
		}
		p.Audio = AudioMode{Kind: AudioBitrateMode, Kbps: kbps}
		return nil
	}
	if raw.AudioKbps != nil {
		return optErr("you cannot use --ab with --vorbis")
	}
	quality := 0
	if raw.AudioQuality != nil {
		quality = *raw.AudioQuality
		if quality < -1 || quality > 10 {
			return optErr("vorbis quality level must be in -1..10 range")
		}
	}
	p.Audio = AudioMode{Kind: AudioQualityMode, Quality: quality, Kbps: vorbisQualityKbps[quality]}
	return nil
}

func resolveSubtitlesAndMetadata(raw RawOptions, p *Plan) error {
	switch {
	case raw.SubFile != "":
		p.Subs = SubtitleSource{Enabled: true, File: raw.SubFile}
	case raw.SubBurn:
		p.Subs = SubtitleSource{Enabled: true, FromInput: true}
	default:
		if raw.SubIndex != nil || raw.SubDelay != nil || raw.SubStyle != "" {
			return optErr("you have not specified --sa")
		}
	}
	if raw.StripMeta && (raw.TitleSet || raw.StampCreation) {
		return optErr("you cannot use --mn with --mt, --mc")
	}
	return nil
}

func checkCoverAndInteractive(raw RawOptions) error {
	if !raw.Cover {
		return nil
	}
	if raw.AudioFile == "" {
		return optErr("audio file must be provided for cover mode")
	}
	if raw.SubBurn || raw.SubFile != "" || raw.Interactive {
		return optErr("you cannot use --cover with --sa, --p")
	}
	return nil
}

// checkOutputPath rejects output choices that would silently clobber
// the input: omitting the output when the input already carries the
// output extension, or naming an output that aliases the input file.
func checkOutputPath(raw RawOptions, p *Plan) error {
	main := p.MainInput()
	if raw.Output == "" {
		if strings.HasSuffix(main, ".webm") {
			return optErr("specify output file please")
		}
		return nil
	}
	if samePaths(main, raw.Output) {
		return optErr("specify another output file please")
	}
	return nil
}

// samePaths compares by normalized absolute path first and then by
// filesystem identity, so symlink and hardlink aliases are caught too.
func samePaths(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && filepath.Clean(absA) == filepath.Clean(absB) {
		return true
	}
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}
