// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the teller TUI.
//
// Supports TOML configuration with sensible defaults and environment
// variable overrides.
//
// Configuration file location (in order of precedence):
//   - ~/.teller-tui/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete teller TUI configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Session configuration
	Session SessionConfig `toml:"session"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// ServerConfig contains teller service connection settings.
type ServerConfig struct {
	// BaseURL is the teller service base URL
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
}

// SessionConfig contains session and inactivity settings.
type SessionConfig struct {
	// InactivityTimeoutSecs is how long the dashboard may sit idle
	// before automatic logout. Valid range is 5-300 seconds.
	InactivityTimeoutSecs int `toml:"inactivity_timeout_secs"`
	// Persistence selects credential storage: "ephemeral" keeps the
	// session in memory only, "durable" survives restarts on disk.
	Persistence string `toml:"persistence"`
	// DBPath is the durable store location (empty = default
	// ~/.teller-tui/session.db)
	DBPath string `toml:"db_path"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
}

// Persistence modes.
const (
	PersistenceEphemeral = "ephemeral"
	PersistenceDurable   = "durable"
)

// Inactivity timeout bounds, in seconds.
const (
	MinInactivitySecs = 5
	MaxInactivitySecs = 300
)

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://127.0.0.1:8000",
			TimeoutSecs: 30,
		},
		Session: SessionConfig{
			InactivityTimeoutSecs: 15,
			Persistence:           PersistenceEphemeral,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the teller TUI configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".teller-tui"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultDBPath returns the default durable session store location.
func DefaultDBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.db"), nil
}

// DefaultLogPath returns the default activity log location.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "teller.log"), nil
}

// EnsureConfigDir ensures the config directory exists. Credentials may
// end up under it, so it is owner-only.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to
// defaults when no file exists. Environment overrides are applied
// last, then the result is validated.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path. A
// missing file is not an error; the defaults stand.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file with
// owner-only permissions.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file. The write is
// atomic, so an interrupted save never leaves a half-written config.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# teller-tui configuration file")
	fmt.Fprintln(&buf, "# Generated by teller-tui - edit with care")
	fmt.Fprintln(&buf, "")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	if c.Server.BaseURL != "" {
		u, err := url.Parse(c.Server.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ValidationError{
				Field:   "server.base_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Server.BaseURL),
			}
		}
	}

	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > 300 {
		return ValidationError{
			Field:   "server.timeout_secs",
			Message: fmt.Sprintf("must be 1-300 seconds, got %d", c.Server.TimeoutSecs),
		}
	}

	if c.Session.InactivityTimeoutSecs < MinInactivitySecs || c.Session.InactivityTimeoutSecs > MaxInactivitySecs {
		return ValidationError{
			Field: "session.inactivity_timeout_secs",
			Message: fmt.Sprintf("must be %d-%d seconds, got %d",
				MinInactivitySecs, MaxInactivitySecs, c.Session.InactivityTimeoutSecs),
		}
	}

	switch c.Session.Persistence {
	case PersistenceEphemeral, PersistenceDurable:
	default:
		return ValidationError{
			Field:   "session.persistence",
			Message: fmt.Sprintf("must be '%s' or '%s', got '%s'", PersistenceEphemeral, PersistenceDurable, c.Session.Persistence),
		}
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		return ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		}
	}

	return nil
}

// SetDefaults fills in any missing or zero values.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Server.TimeoutSecs == 0 {
		c.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if c.Session.InactivityTimeoutSecs == 0 {
		c.Session.InactivityTimeoutSecs = defaults.Session.InactivityTimeoutSecs
	}
	if c.Session.Persistence == "" {
		c.Session.Persistence = defaults.Session.Persistence
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the
// config.
//
// Supported environment variables:
//   - TELLER_SERVER_URL: overrides server.base_url
//   - TELLER_TIMEOUT_SECS: overrides server.timeout_secs
//   - TELLER_INACTIVITY_SECS: overrides session.inactivity_timeout_secs
//   - TELLER_PERSISTENCE: overrides session.persistence
//   - TELLER_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TELLER_SERVER_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("TELLER_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Server.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("TELLER_INACTIVITY_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Session.InactivityTimeoutSecs = secs
		}
	}
	if v := os.Getenv("TELLER_PERSISTENCE"); v != "" {
		c.Session.Persistence = strings.ToLower(v)
	}
	if v := os.Getenv("TELLER_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
}
