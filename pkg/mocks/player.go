package mocks

import (
	"context"

	"github.com/user/webm/pkg/ports"
)

// Player is a mock implementation of ports.Player.
type Player struct {
	RunFunc    func(ctx context.Context, args []string) (string, error)
	OutputFunc func(ctx context.Context, args []string) (ports.Result, error)

	RunCalls    [][]string
	OutputCalls [][]string
}

func (m *Player) Run(ctx context.Context, args []string) (string, error) {
	m.RunCalls = append(m.RunCalls, append([]string(nil), args...))
	if m.RunFunc != nil {
		return m.RunFunc(ctx, args)
	}
	return "", nil
}

func (m *Player) Output(ctx context.Context, args []string) (ports.Result, error) {
	m.OutputCalls = append(m.OutputCalls, append([]string(nil), args...))
	if m.OutputFunc != nil {
		return m.OutputFunc(ctx, args)
	}
	return ports.Result{}, nil
}

var _ ports.Player = (*Player)(nil)
