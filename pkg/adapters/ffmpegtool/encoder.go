// Package ffmpegtool runs the external ffmpeg binary.
package ffmpegtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/user/webm/pkg/ports"
)

// ErrNotFound is returned when no usable ffmpeg executable exists.
var ErrNotFound = errors.New("ffmpeg executable not found")

// Find searches for the ffmpeg executable.
// Priority: 1) custom path from configuration, 2) WEBM_FFMPEG env,
// 3) PATH, 4) common install locations.
func Find(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: configured path %s not found", ErrNotFound, custom)
	}

	if envPath := os.Getenv("WEBM_FFMPEG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: WEBM_FFMPEG %s not found", ErrNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrNotFound
}

// FFmpeg invokes the resolved ffmpeg binary.
type FFmpeg struct {
	path string
}

// New resolves the ffmpeg executable and returns an encoder bound to
// it. The custom path, when non-empty, wins over every other source.
func New(custom string) (*FFmpeg, error) {
	path, err := Find(custom)
	if err != nil {
		return nil, err
	}
	return &FFmpeg{path: path}, nil
}

// Path returns the resolved executable path.
func (f *FFmpeg) Path() string { return f.path }

// Run executes ffmpeg with its progress output shown to the user in
// real time. Stderr is additionally captured so a failure can be
// reported with the encoder's own diagnostics.
func (f *FFmpeg) Run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, f.path, args...)

	var stderrBuf bytes.Buffer
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)

	err := cmd.Run()
	return stderrBuf.String(), err
}

// Output executes ffmpeg silently and captures both streams. A nonzero
// exit status is not an error here: probe invocations exit nonzero by
// design because they specify no output file.
func (f *FFmpeg) Output(ctx context.Context, args []string) (ports.Result, error) {
	cmd := exec.CommandContext(ctx, f.path, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	res := ports.Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return res, err
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}

var _ ports.Encoder = (*FFmpeg)(nil)
