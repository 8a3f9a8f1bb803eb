// Package config handles configuration loading and validation for triage.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTokenEnv is the environment variable consulted for the backend
// token when the config does not name one.
const DefaultTokenEnv = "TRIAGE_TOKEN"

// Config holds the application configuration.
type Config struct {
	Backend Backend `yaml:"backend"`
	Cache   Cache   `yaml:"cache"`
	Sources Sources `yaml:"sources"`
	TUI     TUI     `yaml:"tui"`
}

// Backend describes how to reach the triage backend.
type Backend struct {
	// URL is the backend base URL, e.g. https://api.triage.dev.
	URL string `yaml:"url"`
	// Workspace is the workspace id to open. May be overridden by flag.
	Workspace string `yaml:"workspace"`
	// TokenEnv names the environment variable holding the bearer token.
	TokenEnv string `yaml:"token_env"`
}

// Token reads the bearer token from the configured environment variable.
func (b Backend) Token() string {
	env := b.TokenEnv
	if env == "" {
		env = DefaultTokenEnv
	}
	return os.Getenv(env)
}

// Cache tunes the client-side entity caches.
type Cache struct {
	// MaxAge bounds how old a cache entry may be before a fetch goes back
	// to the network. Zero means cached entries never go stale; eviction
	// is always explicit.
	MaxAge time.Duration `yaml:"max_age"`
}

// Sources filters raw feedback sources.
type Sources struct {
	// Ignore lists glob patterns (doublestar syntax) matched against a
	// mention's "source/source_ref" path, e.g. "slack/bot-*". Matching
	// mentions are dropped before they enter the cache.
	Ignore []string `yaml:"ignore"`
}

// TUI holds view-layer options.
type TUI struct {
	// CompactWidth is the terminal width below which the single-column
	// progressive flow replaces the three-column board.
	CompactWidth int `yaml:"compact_width"`
	// Theme names the color palette. Unknown names fall back to the
	// default palette.
	Theme string `yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: Backend{
			TokenEnv: DefaultTokenEnv,
		},
		TUI: TUI{
			CompactWidth: 100,
			Theme:        "tokyo-night",
		},
	}
}

// Load reads the config file at path, applying defaults for anything not
// set. A missing file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.TUI.CompactWidth <= 0 {
		cfg.TUI.CompactWidth = Default().TUI.CompactWidth
	}

	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "triage", "config.yml")
	}
	return "config.yml"
}

// DefaultLogFile returns the default log file location.
func DefaultLogFile() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "triage", "triage.log")
	}
	return "triage.log"
}
