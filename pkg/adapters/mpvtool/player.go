// Package mpvtool runs the external mpv player for the interactive
// session.
package mpvtool

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/user/webm/pkg/ports"
)

// ControlScript is the Lua script loaded into the player. It binds the
// cut/crop/info keys and reports the user's choices as event lines on
// stderr.
//
//go:embed script.lua
var ControlScript string

// ErrNotFound is returned when no usable mpv executable exists.
var ErrNotFound = errors.New("mpv executable not found")

// Find searches for the mpv executable.
// Priority: 1) custom path from configuration, 2) WEBM_MPV env,
// 3) PATH, 4) common install locations.
func Find(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: configured path %s not found", ErrNotFound, custom)
	}

	if envPath := os.Getenv("WEBM_MPV"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: WEBM_MPV %s not found", ErrNotFound, envPath)
	}

	execName := "mpv"
	if runtime.GOOS == "windows" {
		execName = "mpv.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\mpv\mpv.exe`,
			`C:\Program Files\mpv\mpv.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/mpv",
			"/usr/local/bin/mpv",
		}
	default:
		commonPaths = []string{
			"/usr/bin/mpv",
			"/usr/local/bin/mpv",
			"/snap/bin/mpv",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrNotFound
}

// MPV invokes the resolved mpv binary.
type MPV struct {
	path string
}

// New resolves the mpv executable and returns a player bound to it.
func New(custom string) (*MPV, error) {
	path, err := Find(custom)
	if err != nil {
		return nil, err
	}
	return &MPV{path: path}, nil
}

// Path returns the resolved executable path.
func (m *MPV) Path() string { return m.path }

// Run executes the player with the user's terminal attached so the OSD
// messages and keyboard controls work, while stderr is captured for the
// control script's event lines.
func (m *MPV) Run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, m.path, args...)

	var stderrBuf bytes.Buffer
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return stderrBuf.String(), err
}

// Output executes the player silently and captures both streams. Used
// for version probing; exit status handling matches the encoder's.
func (m *MPV) Output(ctx context.Context, args []string) (ports.Result, error) {
	cmd := exec.CommandContext(ctx, m.path, args...)

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

var _ ports.Player = (*MPV)(nil)
