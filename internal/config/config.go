package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is process configuration from the environment. User-tunable
// settings live in the settings file instead; these are deployment knobs.
type Config struct {
	// Hosted backend. When BackendURL is empty the client runs against a
	// local SQLite service instead.
	BackendURL   string `env:"LIA_BACKEND_URL"`
	BackendToken string `env:"LIA_BACKEND_TOKEN"`

	// External speech-to-text command; empty disables the microphone.
	RecognizerCmd string `env:"LIA_RECOGNIZER_CMD"`

	DataDir string `env:"LIA_DATA_DIR"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ResolveDataDir returns the configured data directory or the platform
// default (~/.local/share/lia).
func (c *Config) ResolveDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lia-data"
	}
	return filepath.Join(home, ".local", "share", "lia")
}

// RemoteMode reports whether a hosted backend is configured.
func (c *Config) RemoteMode() bool {
	return c.BackendURL != ""
}
