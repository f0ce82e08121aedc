// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable settings of the UI shell. Everything has a
// working default; the file exists for development setups (slower
// backends, alternate log locations) and is absent on normal installs.
type Config struct {
	// PollInterval is the watchdog's polling interval for the backend
	// liveness check. Default 3s.
	PollInterval time.Duration `yaml:"poll_interval"`

	// DialAttempts bounds the bridge's connection retry loop. The
	// backend may not be listening yet when the UI starts; the bridge
	// retries this many times before giving up. Default 8.
	DialAttempts int `yaml:"dial_attempts"`

	// DialBackoff is the base retry delay. Each attempt doubles it,
	// capped at DialBackoffCap. Default 250ms.
	DialBackoff time.Duration `yaml:"dial_backoff"`

	// DialBackoffCap caps the doubling backoff. Default 4s.
	DialBackoffCap time.Duration `yaml:"dial_backoff_cap"`

	// LogPath overrides the default <home>/.wox/log/ui.log.
	LogPath string `yaml:"log_path"`

	// ControlSocket overrides the default <home>/.wox/ui.sock, the
	// Unix socket serving UI-invokable operations.
	ControlSocket string `yaml:"control_socket"`

	// Window selects the windowing variant: "standard" or "panel".
	// Empty means platform default (panel on darwin, standard
	// elsewhere).
	Window string `yaml:"window"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PollInterval:   3 * time.Second,
		DialAttempts:   8,
		DialBackoff:    250 * time.Millisecond,
		DialBackoffCap: 4 * time.Second,
	}
}

// DefaultPath returns <home>/.wox/ui.yaml, or an error when the home
// directory cannot be resolved.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".wox", "ui.yaml"), nil
}

// Load reads the config file at path, overlaying it on Default(). A
// missing file is not an error — the defaults apply unchanged. A file
// that exists but fails to parse or validate is an error: a present
// config expresses intent, and silently ignoring it would hide typos.
func Load(path string) (Config, error) {
	configuration := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return configuration, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &configuration); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := configuration.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return configuration, nil
}

func (c Config) validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval)
	}
	if c.DialAttempts <= 0 {
		return fmt.Errorf("dial_attempts must be positive, got %d", c.DialAttempts)
	}
	if c.DialBackoff <= 0 {
		return fmt.Errorf("dial_backoff must be positive, got %v", c.DialBackoff)
	}
	if c.DialBackoffCap < c.DialBackoff {
		return fmt.Errorf("dial_backoff_cap %v is below dial_backoff %v", c.DialBackoffCap, c.DialBackoff)
	}
	switch c.Window {
	case "", "standard", "panel":
	default:
		return fmt.Errorf("window must be \"standard\" or \"panel\", got %q", c.Window)
	}
	return nil
}
