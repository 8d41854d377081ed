package capability

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/user/webm/pkg/mocks"
	"github.com/user/webm/pkg/plan"
	"github.com/user/webm/pkg/ports"
)

const sampleCodecs = `Codecs:
 DEV.L. av1                  Alliance for Open Media AV1 (decoders: libdav1d libaom-av1) (encoders: libaom-av1)
 DEV.L. vp8                  On2 VP8 (decoders: vp8 libvpx) (encoders: libvpx)
 DEV.L. vp9                  Google VP9 (decoders: vp9 libvpx-vp9) (encoders: libvpx-vp9)
 DEA.L. opus                 Opus (decoders: opus libopus) (encoders: opus libopus)
 DEA.L. vorbis               Vorbis (decoders: vorbis libvorbis) (encoders: vorbis libvorbis)
`

func versionedEncoder(version, codecs string) *mocks.Encoder {
	return &mocks.Encoder{
		OutputFunc: func(ctx context.Context, args []string) (ports.Result, error) {
			if args[0] == "-version" {
				return ports.Result{Stdout: version}, nil
			}
			return ports.Result{Stdout: codecs}, nil
		},
	}
}

func TestCheckEncoderOK(t *testing.T) {
	enc := versionedEncoder("ffmpeg version 6.1.1 Copyright (c) 2000-2023\n", sampleCodecs)
	if err := CheckEncoder(context.Background(), enc, &plan.Plan{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckEncoderGitBuildPasses(t *testing.T) {
	enc := versionedEncoder("ffmpeg version N-109696-g0b0b3f6a8c\n", sampleCodecs)
	if err := CheckEncoder(context.Background(), enc, &plan.Plan{}); err != nil {
		t.Fatalf("git builds must pass the version gate: %v", err)
	}
}

func TestCheckEncoderTooOld(t *testing.T) {
	enc := versionedEncoder("ffmpeg version 1.2.3\n", sampleCodecs)
	err := CheckEncoder(context.Background(), enc, &plan.Plan{})
	var capErr *CapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapabilityError, got %v", err)
	}
	if !strings.Contains(capErr.Msg, "version must be 2+") {
		t.Errorf("unexpected message: %q", capErr.Msg)
	}
}

func TestCheckEncoderUnparsableVersion(t *testing.T) {
	enc := versionedEncoder("something else entirely\n", sampleCodecs)
	var capErr *CapabilityError
	if err := CheckEncoder(context.Background(), enc, &plan.Plan{}); !errors.As(err, &capErr) {
		t.Fatalf("expected CapabilityError, got %v", err)
	}
}

func TestCheckEncoderMissingCodecs(t *testing.T) {
	cases := []struct {
		name    string
		prep    func(p *plan.Plan)
		codecs  string
		missing string
	}{
		{
			"no libvpx",
			func(p *plan.Plan) {},
			" DEA.L. opus (encoders: libopus)\n",
			"libvpx",
		},
		{
			"no vorbis when quality mode",
			func(p *plan.Plan) { p.Audio = plan.AudioMode{Kind: plan.AudioQualityMode} },
			strings.ReplaceAll(sampleCodecs, "libvorbis", "vorbis"),
			"libvorbis",
		},
		{
			"no aom when av1",
			func(p *plan.Plan) { p.Codec = plan.CodecAV1 },
			strings.ReplaceAll(sampleCodecs, "libaom-av1", "librav1e"),
			"libaom-av1",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := &plan.Plan{}
			c.prep(p)
			enc := versionedEncoder("ffmpeg version 6.0\n", c.codecs)
			err := CheckEncoder(context.Background(), enc, p)
			var capErr *CapabilityError
			if !errors.As(err, &capErr) {
				t.Fatalf("expected CapabilityError, got %v", err)
			}
			if !strings.Contains(capErr.Msg, c.missing) {
				t.Errorf("message %q should name %s", capErr.Msg, c.missing)
			}
		})
	}
}

func TestCheckEncoderNoExtrasByDefault(t *testing.T) {
	// Vorbis and AV1 support must not be demanded unless the plan
	// actually uses them.
	codecs := strings.NewReplacer("libvorbis", "vorbis", "libaom-av1", "librav1e").Replace(sampleCodecs)
	enc := versionedEncoder("ffmpeg version 6.0\n", codecs)
	if err := CheckEncoder(context.Background(), enc, &plan.Plan{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckPlayer(t *testing.T) {
	cases := []struct {
		name    string
		version string
		ok      bool
	}{
		{"modern", "mpv 0.37.0 Copyright 2000-2023 mpv/MPlayer/mplayer2 projects\n", true},
		{"minimum", "mpv 0.17.0\n", true},
		{"too old", "mpv 0.16.1\n", false},
		{"git build", "mpv git-9f13c07\n", true},
		{"garbage", "not a player\n", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			player := &mocks.Player{
				OutputFunc: func(ctx context.Context, args []string) (ports.Result, error) {
					return ports.Result{Stdout: c.version}, nil
				},
			}
			err := CheckPlayer(context.Background(), player)
			if c.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !c.ok && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCheckSpawnFailure(t *testing.T) {
	enc := &mocks.Encoder{
		OutputFunc: func(ctx context.Context, args []string) (ports.Result, error) {
			return ports.Result{}, errors.New("exec: not found")
		},
	}
	var capErr *CapabilityError
	if err := Check(context.Background(), enc, nil, &plan.Plan{}); !errors.As(err, &capErr) {
		t.Fatalf("expected CapabilityError, got %v", err)
	}
	if capErr.Tool != "ffmpeg" {
		t.Errorf("tool = %q, want ffmpeg", capErr.Tool)
	}
}
