// Package main provides the CLI entry point for webm.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/webm/pkg/adapters/ffmpegtool"
	"github.com/user/webm/pkg/adapters/logger"
	"github.com/user/webm/pkg/adapters/mpvtool"
	"github.com/user/webm/pkg/adapters/stdinprompt"
	"github.com/user/webm/pkg/bitrate"
	"github.com/user/webm/pkg/capability"
	"github.com/user/webm/pkg/config"
	"github.com/user/webm/pkg/encode"
	"github.com/user/webm/pkg/interactive"
	"github.com/user/webm/pkg/plan"
	"github.com/user/webm/pkg/ports"
	"github.com/user/webm/pkg/probe"
	"github.com/user/webm/pkg/stats"
	"github.com/user/webm/pkg/timefmt"
)

var version = "0.10.0"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// The default version flag aliases -v, which collides with
	// --verbose; keep -v for verbose like the original CLI and expose
	// the version as -V/--version instead.
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   l10n.T("print the version"),
	}
	return &cli.App{
		Name:      "webm",
		Usage:     l10n.T("create WebM videos within a given size limit"),
		Version:   version,
		ArgsUsage: "[outfile]",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: l10n.T("input video file")},
			&cli.StringFlag{Name: "ss", Usage: l10n.T("start time of the fragment to encode")},
			&cli.StringFlag{Name: "t", Usage: l10n.T("duration of the fragment to encode")},
			&cli.StringFlag{Name: "to", Usage: l10n.T("end time of the fragment to encode")},
			&cli.Float64Flag{Name: "limit", Aliases: []string{"l"}, Usage: l10n.T("output file size limit in MiB (default 8)")},
			&cli.Float64Flag{Name: "vb", Usage: l10n.T("video bitrate in kbits (0 with --crf = constant quality)")},
			&cli.BoolFlag{Name: "vp8", Usage: l10n.T("encode with VP8/Vorbis instead of VP9/Opus")},
			&cli.BoolFlag{Name: "av1", Usage: l10n.T("encode with AV1/Opus instead of VP9/Opus")},
			&cli.IntFlag{Name: "crf", Usage: l10n.T("constant rate factor, 0..63")},
			&cli.IntFlag{Name: "qmin", Usage: l10n.T("minimum quantizer, 0..63")},
			&cli.IntFlag{Name: "qmax", Usage: l10n.T("maximum quantizer, 0..63")},
			&cli.IntFlag{Name: "vw", Usage: l10n.T("output video width, height scales to keep aspect")},
			&cli.IntFlag{Name: "vh", Usage: l10n.T("output video height, width scales to keep aspect")},
			&cli.StringFlag{Name: "vs", Usage: l10n.T("video stream specifier, default v:0")},
			&cli.StringFlag{Name: "vfi", Usage: l10n.T("video filters inserted at the start of the chain")},
			&cli.StringFlag{Name: "vf", Usage: l10n.T("video filters appended to the end of the chain")},
			&cli.BoolFlag{Name: "an", Usage: l10n.T("strip audio from the output")},
			&cli.BoolFlag{Name: "acopy", Usage: l10n.T("copy the source audio stream unchanged")},
			&cli.BoolFlag{Name: "opus", Usage: l10n.T("force Opus audio")},
			&cli.BoolFlag{Name: "vorbis", Usage: l10n.T("force Vorbis audio")},
			&cli.Float64Flag{Name: "ab", Usage: l10n.T("Opus audio bitrate in kbits, default 64")},
			&cli.IntFlag{Name: "aq", Usage: l10n.T("Vorbis audio quality, -1..10")},
			&cli.StringFlag{Name: "aa", Usage: l10n.T("external audio file")},
			&cli.StringFlag{Name: "as", Usage: l10n.T("audio stream specifier, default a:0")},
			&cli.StringFlag{Name: "af", Usage: l10n.T("audio filters")},
			&cli.BoolFlag{Name: "sa", Usage: l10n.T("burn the input file's subtitles into the video")},
			&cli.StringFlag{Name: "sa-file", Usage: l10n.T("burn subtitles from an external file")},
			&cli.IntFlag{Name: "si", Usage: l10n.T("subtitle stream index inside the subtitle source")},
			&cli.Float64Flag{Name: "sd", Usage: l10n.T("subtitle delay in seconds")},
			&cli.StringFlag{Name: "sf", Usage: l10n.T("force subtitle style, ASS style overrides")},
			&cli.BoolFlag{Name: "player", Aliases: []string{"p"}, Usage: l10n.T("run the interactive player session first")},
			&cli.StringFlag{Name: "po", Usage: l10n.T("raw options for the interactive player")},
			&cli.BoolFlag{Name: "help-imode", Usage: l10n.T("show interactive mode help and exit")},
			&cli.BoolFlag{Name: "cover", Usage: l10n.T("cover mode: loop a picture over the --aa audio")},
			&cli.StringFlag{Name: "cover-loop", Usage: l10n.T("raw loop options for cover mode, default \"-r 1 -loop 1\"")},
			&cli.StringFlag{Name: "mt", Usage: l10n.T("title metadata; empty value uses the output basename")},
			&cli.BoolFlag{Name: "mc", Usage: l10n.T("stamp creation time metadata")},
			&cli.BoolFlag{Name: "mn", Usage: l10n.T("strip all metadata")},
			&cli.StringFlag{Name: "fo", Usage: l10n.T("raw encoder options placed before the output")},
			&cli.StringFlag{Name: "foi", Usage: l10n.T("raw encoder options placed before the input")},
			&cli.StringFlag{Name: "foi2", Usage: l10n.T("raw encoder options placed after the input")},
			&cli.BoolFlag{Name: "single-pass", Usage: l10n.T("skip the analysis pass")},
			&cli.BoolFlag{Name: "cn", Usage: l10n.T("skip the capability checks")},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: l10n.T("verbose output")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("suppress all log output")},
		},
		Action: action,
	}
}

func action(c *cli.Context) error {
	if c.Bool("help-imode") {
		fmt.Fprintln(os.Stderr, interactive.KeysHelp)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Cannot proceed due to the following error: %s", err))
		return cli.Exit("", 1)
	}

	var log ports.Logger
	switch {
	case c.Bool("quiet"):
		log = logger.NewNoop()
	case c.Bool("verbose"):
		log = logger.NewConsole(ports.LevelDebug)
	default:
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	if err := run(c, cfg, log); err != nil {
		if errors.Is(err, interactive.ErrAborted) || errors.Is(err, context.Canceled) {
			return cli.Exit("", 1)
		}
		// Fatal errors bypass --quiet: a failed run must say why.
		errlog := log
		if c.Bool("quiet") {
			errlog = logger.NewConsole(ports.LevelError)
		}
		errlog.Error("Cannot proceed due to the following error: %s", err)
		if c.Bool("verbose") {
			if diag := diagnostics(err); diag != "" {
				errlog.Raw(diag)
			}
		}
		return cli.Exit("", 1)
	}
	return nil
}

func run(c *cli.Context, cfg config.Config, log ports.Logger) error {
	start := time.Now()

	raw := buildRawOptions(c)
	if raw.Input == "" {
		return &plan.OptionError{Rule: "no input file specified"}
	}
	p, err := plan.Resolve(raw)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down")
		cancel()
	}()

	enc, err := ffmpegtool.New(cfg.FFmpegPath)
	if err != nil {
		return err
	}
	var player ports.Player
	if p.Interactive {
		mpv, err := mpvtool.New(cfg.MpvPath)
		if err != nil {
			return err
		}
		player = mpv
	}

	if !c.Bool("cn") {
		if err := capability.Check(ctx, enc, player, p); err != nil {
			return err
		}
	}

	if p.Interactive {
		driver := interactive.New(player, stdinprompt.New(), log)
		if err := driver.Run(ctx, p); err != nil {
			return err
		}
	}

	log.Info("Probing %s", p.MainInput())
	if err := probe.Run(ctx, enc, p); err != nil {
		return err
	}
	if p.InDuration != timefmt.Unknown {
		log.Debug("Input duration: %s", timefmt.Format(p.InDuration))
	}
	log.Debug("Output duration: %s", timefmt.Format(p.OutDuration))

	p.DeriveOutputPath()
	if raw.TitleSet && p.Title == "" {
		base := filepath.Base(p.OutPath)
		p.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if p.Size.ByLimit() {
		vb, err := bitrate.ForLimit(p.Size.LimitMiB, p.OutDuration, p.Audio.Kbps)
		if err != nil {
			return err
		}
		p.VideoKbps = vb
		log.Info("Calculated video bitrate: %gk", vb)
	}

	orch := encode.New(enc, log, runtime.NumCPU(), c.Bool("verbose"))
	if err := orch.Run(ctx, p); err != nil {
		return err
	}

	return stats.Report(log, p, time.Since(start))
}

func buildRawOptions(c *cli.Context) plan.RawOptions {
	raw := plan.RawOptions{
		Input:  c.String("input"),
		Output: c.Args().First(),

		Start:    c.String("ss"),
		Duration: c.String("t"),
		End:      c.String("to"),

		VP8: c.Bool("vp8"),
		AV1: c.Bool("av1"),

		Width:  c.Int("vw"),
		Height: c.Int("vh"),

		VideoStream:   c.String("vs"),
		InsertFilters: c.String("vfi"),
		VideoFilters:  c.String("vf"),

		NoAudio:      c.Bool("an"),
		CopyAudio:    c.Bool("acopy"),
		Opus:         c.Bool("opus"),
		Vorbis:       c.Bool("vorbis"),
		AudioFile:    c.String("aa"),
		AudioStream:  c.String("as"),
		AudioFilters: c.String("af"),

		SubBurn:  c.Bool("sa"),
		SubFile:  c.String("sa-file"),
		SubStyle: c.String("sf"),

		Interactive: c.Bool("player"),
		PlayerOpts:  c.String("po"),

		Cover:     c.Bool("cover"),
		CoverLoop: c.String("cover-loop"),

		Title:         c.String("mt"),
		TitleSet:      c.IsSet("mt"),
		StampCreation: c.Bool("mc"),
		StripMeta:     c.Bool("mn"),

		RawOpts:      c.String("fo"),
		RawPreInput:  c.String("foi"),
		RawPostInput: c.String("foi2"),

		SinglePass: c.Bool("single-pass"),
	}

	if c.IsSet("limit") {
		v := c.Float64("limit")
		raw.LimitMiB = &v
	}
	if c.IsSet("vb") {
		v := c.Float64("vb")
		raw.VideoKbps = &v
	}
	if c.IsSet("crf") {
		v := c.Int("crf")
		raw.CRF = &v
	}
	if c.IsSet("qmin") {
		v := c.Int("qmin")
		raw.QMin = &v
	}
	if c.IsSet("qmax") {
		v := c.Int("qmax")
		raw.QMax = &v
	}
	if c.IsSet("ab") {
		v := c.Float64("ab")
		raw.AudioKbps = &v
	}
	if c.IsSet("aq") {
		v := c.Int("aq")
		raw.AudioQuality = &v
	}
	if c.IsSet("si") {
		v := c.Int("si")
		raw.SubIndex = &v
	}
	if c.IsSet("sd") {
		v := c.Float64("sd")
		raw.SubDelay = &v
	}

	return raw
}

// diagnostics surfaces the captured process output hiding behind the
// typed errors, for verbose mode.
func diagnostics(err error) string {
	var encErr *encode.EncoderError
	if errors.As(err, &encErr) {
		return encErr.Stderr
	}
	var playerErr *interactive.PlayerError
	if errors.As(err, &playerErr) {
		return playerErr.Stderr
	}
	return ""
}
