// Package config provides configuration loading and management.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the persistent settings that are not per-encode options:
// where the external tools live and how chatty the output is.
type Config struct {
	// FFmpegPath overrides the ffmpeg executable lookup.
	FFmpegPath string `yaml:"ffmpeg"`
	// MpvPath overrides the mpv executable lookup.
	MpvPath string `yaml:"mpv"`
	// LogLevel is one of debug, info, warn, error, quiet.
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		LogLevel: "info",
	}
}

// Path returns the configuration file location, honoring
// XDG_CONFIG_HOME.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "webm", "config.yaml")
}

// Load reads the configuration file if it exists and applies the
// environment overrides. A missing file is not an error; a malformed
// one is.
func Load() (Config, error) {
	cfg := Defaults()

	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		case !errors.Is(err, os.ErrNotExist):
			return cfg, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file, still
// letting the environment win.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WEBM_FFMPEG"); v != "" {
		c.FFmpegPath = v
	}
	if v := os.Getenv("WEBM_MPV"); v != "" {
		c.MpvPath = v
	}
}
