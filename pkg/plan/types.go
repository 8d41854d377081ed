// Package plan turns the raw user-specified encoding options into a
// single fully resolved, internally consistent Encode Plan. The Plan is
// the only source of truth threaded through probing, bitrate resolution
// and encoding.
package plan

// VideoCodec selects the video encoder and implies the companion audio
// codec unless the user overrides it.
type VideoCodec int

const (
	// CodecVP9 is the default; companion audio codec is Opus.
	CodecVP9 VideoCodec = iota
	// CodecVP8 is the legacy choice; companion audio codec is Vorbis.
	CodecVP8
	// CodecAV1 is the alternative modern choice; companion audio codec
	// is Opus.
	CodecAV1
)

// String returns the encoder name used in diagnostics.
func (c VideoCodec) String() string {
	switch c {
	case CodecVP8:
		return "vp8"
	case CodecAV1:
		return "av1"
	default:
		return "vp9"
	}
}

// SizeTarget is the size/quality intent: either a file size limit from
// which the video bitrate is computed, or an explicit video bitrate.
// Exactly one of the two is ever active.
type SizeTarget struct {
	limit bool
	// LimitMiB is the target file size in mebibytes (limit form).
	LimitMiB float64
	// Kbps is the explicit video bitrate in kbits (bitrate form).
	// Zero combined with a quality level means constant quality mode.
	Kbps float64
}

// SizeByLimit builds the size-limit form of a SizeTarget.
func SizeByLimit(mib float64) SizeTarget { return SizeTarget{limit: true, LimitMiB: mib} }

// SizeByBitrate builds the explicit-bitrate form of a SizeTarget.
func SizeByBitrate(kbps float64) SizeTarget { return SizeTarget{Kbps: kbps} }

// ByLimit reports whether the target is a size limit.
func (s SizeTarget) ByLimit() bool { return s.limit }

// AudioModeKind tags the four mutually exclusive audio states.
type AudioModeKind int

const (
	// AudioBitrateMode encodes audio with Opus at a fixed bitrate.
	AudioBitrateMode AudioModeKind = iota
	// AudioQualityMode encodes audio with Vorbis at a quality index.
	AudioQualityMode
	// AudioCopyMode passes the source audio stream through unchanged.
	AudioCopyMode
	// AudioDisabledMode strips audio from the output.
	AudioDisabledMode
)

// AudioMode is the resolved audio intent. Kbps always carries the
// bitrate used for size math: the explicit Opus bitrate, the Vorbis
// quality lookup value, a pass-through estimate, or zero when audio is
// disabled. It is not an encoding parameter except in bitrate mode.
type AudioMode struct {
	Kind    AudioModeKind
	Kbps    float64
	Quality int
}

// copyAudioKbpsEstimate is assumed for pass-through audio when
// computing the video bitrate; the real track bitrate is unknown
// without decoding.
const copyAudioKbpsEstimate = 128

// vorbisQualityKbps approximates the bitrate produced by each Vorbis
// quality level. Used only so the size math has a number to subtract,
// never passed to the encoder.
var vorbisQualityKbps = map[int]float64{
	-1: 45,
	0:  64,
	1:  80,
	2:  96,
	3:  112,
	4:  128,
	5:  160,
	6:  192,
	7:  224,
	8:  256,
	9:  320,
	10: 500,
}

// SubtitleSource says where burned-in subtitles come from.
type SubtitleSource struct {
	// Enabled is false when no subtitles are burned at all.
	Enabled bool
	// FromInput burns the input file's own subtitle stream.
	FromInput bool
	// File names an external subtitle file (when not FromInput).
	File string
}

// Plan is the fully resolved set of encoding parameters. It is built
// once by Resolve, optionally mutated by the interactive session and by
// the prober's derived fields, then consumed read-only by the bitrate
// calculator and the encode orchestrator.
type Plan struct {
	// Inputs.
	Input     string
	AudioFile string
	Cover     bool
	CoverLoop string // raw loop options, empty means the default "-r 1 -loop 1"

	// Time window in seconds; nil means unset. At most one of Duration
	// and End is set.
	Start    *float64
	Duration *float64
	End      *float64

	Interactive bool
	PlayerOpts  string

	Size SizeTarget
	CRF  *int
	QMin *int
	QMax *int

	Codec VideoCodec
	Audio AudioMode

	VideoStream string
	AudioStream string
	Width       int
	Height      int

	Subs     SubtitleSource
	SubIndex *int
	SubDelay *float64
	SubStyle string

	InsertFilters string
	VideoFilters  string
	AudioFilters  string

	Title         string
	StampCreation bool
	StripMeta     bool

	RawOpts      string
	RawPreInput  string
	RawPostInput string

	SinglePass bool

	// Derived after probing; zero until then.
	InDuration  float64
	OutDuration float64
	InTitle     string
	VideoKbps   float64
	OutPath     string
}

// MainInput returns the file that durations and the output name derive
// from: the audio track in cover mode, the video input otherwise.
func (p *Plan) MainInput() string {
	if p.Cover {
		return p.AudioFile
	}
	return p.Input
}

// HasTimeWindow reports whether any explicit time-window field is set.
func (p *Plan) HasTimeWindow() bool {
	return p.Start != nil || p.Duration != nil || p.End != nil
}
