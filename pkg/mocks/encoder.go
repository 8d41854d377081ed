// Package mocks provides hand-rolled test doubles for the ports.
package mocks

import (
	"context"

	"github.com/user/webm/pkg/ports"
)

// Encoder is a mock implementation of ports.Encoder.
type Encoder struct {
	RunFunc    func(ctx context.Context, args []string) (string, error)
	OutputFunc func(ctx context.Context, args []string) (ports.Result, error)

	// Recorded calls for verification.
	RunCalls    [][]string
	OutputCalls [][]string
}

func (m *Encoder) Run(ctx context.Context, args []string) (string, error) {
	m.RunCalls = append(m.RunCalls, append([]string(nil), args...))
	if m.RunFunc != nil {
		return m.RunFunc(ctx, args)
	}
	return "", nil
}

func (m *Encoder) Output(ctx context.Context, args []string) (ports.Result, error) {
	m.OutputCalls = append(m.OutputCalls, append([]string(nil), args...))
	if m.OutputFunc != nil {
		return m.OutputFunc(ctx, args)
	}
	return ports.Result{}, nil
}

var _ ports.Encoder = (*Encoder)(nil)
