// Package config loads the simulator settings from ~/.cubesim/config.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned for out-of-range settings.
var ErrInvalid = errors.New("config: invalid setting")

// Defaults.
const (
	DefaultTurnDurationMs = 250
	DefaultFrameRate      = 60
)

// Config holds every setting. Command-line flags override file values.
type Config struct {
	TurnDurationMs int               `toml:"turn_duration_ms"`
	FrameRate      int               `toml:"frame_rate"`
	Journal        bool              `toml:"journal"`
	DBPath         string            `toml:"db_path,omitempty"`
	LogPath        string            `toml:"log_path,omitempty"`
	Keys           map[string]string `toml:"keys,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		TurnDurationMs: DefaultTurnDurationMs,
		FrameRate:      DefaultFrameRate,
	}
}

// Dir returns ~/.cubesim.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubesim"), nil
}

// DefaultPath returns ~/.cubesim/config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (c *Config) Validate() error {
	if c.TurnDurationMs <= 0 || c.TurnDurationMs > 10_000 {
		return fmt.Errorf("%w: turn_duration_ms %d", ErrInvalid, c.TurnDurationMs)
	}
	if c.FrameRate < 1 || c.FrameRate > 240 {
		return fmt.Errorf("%w: frame_rate %d", ErrInvalid, c.FrameRate)
	}
	return nil
}

// TurnDuration returns the animated quarter-turn duration.
func (c *Config) TurnDuration() time.Duration {
	return time.Duration(c.TurnDurationMs) * time.Millisecond
}

// FrameInterval returns the time between frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
