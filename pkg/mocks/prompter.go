package mocks

import "github.com/user/webm/pkg/ports"

// Prompter is a mock implementation of ports.Prompter.
type Prompter struct {
	ConfirmFunc func(question string, def bool) bool

	ConfirmCalls []ConfirmCall
}

// ConfirmCall records a call to Confirm.
type ConfirmCall struct {
	Question string
	Default  bool
}

func (m *Prompter) Confirm(question string, def bool) bool {
	m.ConfirmCalls = append(m.ConfirmCalls, ConfirmCall{Question: question, Default: def})
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(question, def)
	}
	return def
}

var _ ports.Prompter = (*Prompter)(nil)
