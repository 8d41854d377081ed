package logger

import "github.com/user/webm/pkg/ports"

// NoopLogger discards all log messages.
type NoopLogger struct{}

// NewNoop creates a logger that discards everything.
func NewNoop() *NoopLogger { return &NoopLogger{} }

func (l *NoopLogger) Debug(msg string, args ...interface{}) {}
func (l *NoopLogger) Info(msg string, args ...interface{})  {}
func (l *NoopLogger) Warn(msg string, args ...interface{})  {}
func (l *NoopLogger) Error(msg string, args ...interface{}) {}
func (l *NoopLogger) Raw(line string)                       {}

var _ ports.Logger = (*NoopLogger)(nil)
