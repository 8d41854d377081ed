package interactive

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/user/webm/pkg/adapters/logger"
	"github.com/user/webm/pkg/mocks"
	"github.com/user/webm/pkg/plan"
)

func newDriver(stderr string, runErr error, answer bool) (*Driver, *mocks.Player, *mocks.Prompter) {
	player := &mocks.Player{
		RunFunc: func(ctx context.Context, args []string) (string, error) {
			return stderr, runErr
		},
	}
	prompt := &mocks.Prompter{
		ConfirmFunc: func(question string, def bool) bool { return answer },
	}
	return New(player, prompt, logger.NewNoop()), player, prompt
}

func TestDriverPlayerInvocation(t *testing.T) {
	d, player, _ := newDriver("", nil, true)
	p := &plan.Plan{Input: "in.mkv", PlayerOpts: "--fs --volume 50"}

	if err := d.Run(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(player.RunCalls) != 1 {
		t.Fatalf("expected one player invocation, got %d", len(player.RunCalls))
	}
	args := player.RunCalls[0]
	if args[0] != "--msg-level" || args[1] != "all=error" {
		t.Errorf("message level must be restricted: %v", args)
	}
	if args[2] != "--script" || !strings.HasSuffix(args[3], ".lua") {
		t.Errorf("expected a .lua control script: %v", args)
	}
	if args[4] != "--fs" || args[5] != "--volume" || args[6] != "50" {
		t.Errorf("player options must be tokenized shell-style: %v", args)
	}
	if args[len(args)-1] != "in.mkv" {
		t.Errorf("input must come last: %v", args)
	}
}

func TestDriverMergesCut(t *testing.T) {
	d, _, prompt := newDriver("cut=[10,60]\n", nil, true)
	p := &plan.Plan{Input: "in.mkv"}

	if err := d.Run(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Start == nil || *p.Start != 10 {
		t.Errorf("Start = %v, want 10", p.Start)
	}
	if p.End == nil || *p.End != 60 {
		t.Errorf("End = %v, want 60", p.End)
	}
	if len(prompt.ConfirmCalls) != 1 || !prompt.ConfirmCalls[0].Default {
		t.Errorf("continue prompt must default to yes: %+v", prompt.ConfirmCalls)
	}
}

func TestDriverUnboundedCutSides(t *testing.T) {
	d, _, _ := newDriver("cut=[-1,42]\n", nil, true)
	p := &plan.Plan{Input: "in.mkv"}

	if err := d.Run(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Start != nil {
		t.Errorf("an unbounded start side must stay unset, got %v", *p.Start)
	}
	if p.End == nil || *p.End != 42 {
		t.Errorf("End = %v, want 42", p.End)
	}
}

func TestDriverCropAppendsToInsertFilters(t *testing.T) {
	d, _, _ := newDriver("crop=[640,480,10,20]\n", nil, true)
	p := &plan.Plan{Input: "in.mkv", InsertFilters: "hflip"}

	if err := d.Run(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.InsertFilters != "hflip,crop=640:480:10:20" {
		t.Errorf("InsertFilters = %q", p.InsertFilters)
	}
}

func TestDriverInfoMerge(t *testing.T) {
	stderr := `info={"vs":0,"as":-1,"aa":"","si":1,"sa":"","sd":-0.3}` + "\n"
	d, _, _ := newDriver(stderr, nil, true)
	p := &plan.Plan{Input: "in.mkv"}

	if err := d.Run(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.VideoStream != "0" {
		t.Errorf("VideoStream = %q, want 0", p.VideoStream)
	}
	if p.AudioStream != "" {
		t.Errorf("an unselected audio stream must stay unset, got %q", p.AudioStream)
	}
	if p.SubIndex == nil || *p.SubIndex != 1 {
		t.Errorf("SubIndex = %v, want 1", p.SubIndex)
	}
	if !p.Subs.Enabled || !p.Subs.FromInput {
		t.Errorf("a sub index without a file implies input subtitles: %+v", p.Subs)
	}
	if p.SubDelay == nil || *p.SubDelay != -0.3 {
		t.Errorf("SubDelay = %v, want -0.3", p.SubDelay)
	}
}

func TestDriverDeclineAborts(t *testing.T) {
	d, _, _ := newDriver("cut=[10,60]\n", nil, false)
	p := &plan.Plan{Input: "in.mkv"}

	if err := d.Run(context.Background(), p); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if p.Start != nil || p.End != nil {
		t.Errorf("a declined session must not touch the plan: %+v", p)
	}
}

func TestDriverEmptySession(t *testing.T) {
	t.Run("accept encodes intact", func(t *testing.T) {
		d, _, prompt := newDriver("", nil, true)
		p := &plan.Plan{Input: "in.mkv"}
		if err := d.Run(context.Background(), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(prompt.ConfirmCalls) != 1 || prompt.ConfirmCalls[0].Default {
			t.Errorf("intact prompt must default to no: %+v", prompt.ConfirmCalls)
		}
	})
	t.Run("decline aborts", func(t *testing.T) {
		d, _, _ := newDriver("", nil, false)
		p := &plan.Plan{Input: "in.mkv"}
		if err := d.Run(context.Background(), p); !errors.Is(err, ErrAborted) {
			t.Fatalf("expected ErrAborted, got %v", err)
		}
	})
}

func TestDriverPlayerFailure(t *testing.T) {
	d, _, prompt := newDriver("mpv blew up", errors.New("exit status 2"), true)
	p := &plan.Plan{Input: "in.mkv"}

	err := d.Run(context.Background(), p)
	var playerErr *PlayerError
	if !errors.As(err, &playerErr) {
		t.Fatalf("expected PlayerError, got %v", err)
	}
	if playerErr.Stderr != "mpv blew up" {
		t.Errorf("stderr = %q", playerErr.Stderr)
	}
	if len(prompt.ConfirmCalls) != 0 {
		t.Errorf("no prompt after a player failure: %+v", prompt.ConfirmCalls)
	}
}
