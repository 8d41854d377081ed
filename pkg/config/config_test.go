package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.FFmpegPath != "" || cfg.MpvPath != "" {
		t.Errorf("tool paths must default to lookup: %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("WEBM_FFMPEG", "")
	t.Setenv("WEBM_MPV", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "ffmpeg: /opt/ffmpeg\nmpv: /opt/mpv\nlog_level: debug\n")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg" || cfg.MpvPath != "/opt/mpv" {
		t.Errorf("tool paths not loaded: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("WEBM_FFMPEG", "")
	t.Setenv("WEBM_MPV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("a missing config file must not fail: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("WEBM_FFMPEG", "")
	t.Setenv("WEBM_MPV", "")
	writeFile(t, filepath.Join(dir, "webm", "config.yaml"), "log_level: quiet\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "quiet" {
		t.Errorf("LogLevel = %q, want quiet", cfg.LogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "ffmpeg: /opt/ffmpeg\n")
	t.Setenv("WEBM_FFMPEG", "/env/ffmpeg")
	t.Setenv("WEBM_MPV", "/env/mpv")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FFmpegPath != "/env/ffmpeg" {
		t.Errorf("FFmpegPath = %q, environment must win", cfg.FFmpegPath)
	}
	if cfg.MpvPath != "/env/mpv" {
		t.Errorf("MpvPath = %q, environment must win", cfg.MpvPath)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "webm", "config.yaml"), "log_level: [broken\n")

	if _, err := Load(); err == nil {
		t.Error("malformed config must fail loudly")
	}
}
