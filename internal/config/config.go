// Package config loads the quickpaths settings file.
//
// Settings live in a TOML file in the data directory. A missing file is not
// an error: the defaults are used. Values present in the file override the
// defaults key by key.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"quickpaths/internal/atomicfile"
	"quickpaths/internal/model"
	"quickpaths/internal/paths"
)

// Config is the top-level application configuration.
type Config struct {
	// CatalogPath is the delimited file holding the entries; ~ is allowed.
	CatalogPath string `toml:"catalog_path"`
	// DefaultExpandTilde is the initial state of the tilde toggle: true
	// shows and copies paths as stored (with ~), false shows them expanded.
	DefaultExpandTilde bool `toml:"default_expand_tilde"`
	// EnterAction is what Enter does on an entry: "search" or "paste".
	EnterAction model.EnterAction `toml:"enter_action"`
	// SearchCommand launches the file search tool. {query} is replaced by
	// the entry's path. Empty selects the platform default.
	SearchCommand string `toml:"search_command,omitempty"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// MaxSizeMB is the log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig(dir paths.DataDir) *Config {
	return &Config{
		CatalogPath:        dir.Catalog(),
		DefaultExpandTilde: false,
		EnterAction:        model.ActionSearch,
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 5,
		},
	}
}

// Load reads config.toml from dir, falling back to defaults when the file
// does not exist.
func Load(dir paths.DataDir) (*Config, error) {
	cfg := DefaultConfig(dir)

	data, err := os.ReadFile(dir.Config())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadOrCreate is Load, but writes the defaults to dir when no config file
// exists yet. created reports whether it did.
func LoadOrCreate(dir paths.DataDir) (cfg *Config, created bool, err error) {
	if _, err := os.Stat(dir.Config()); err == nil || !errors.Is(err, fs.ErrNotExist) {
		cfg, err := Load(dir)
		return cfg, false, err
	}
	cfg = DefaultConfig(dir)
	if err := cfg.Save(dir.Config()); err != nil {
		return cfg, false, err
	}
	return cfg, true, nil
}

// Save writes the configuration as TOML to path.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

func (c *Config) normalize() {
	c.CatalogPath = strings.TrimSpace(c.CatalogPath)
	c.EnterAction = model.EnterAction(strings.ToLower(strings.TrimSpace(string(c.EnterAction))))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return errors.New("catalog_path must not be empty")
	}
	switch c.EnterAction {
	case model.ActionSearch, model.ActionPaste:
	default:
		return fmt.Errorf("enter_action must be %q or %q, got %q", model.ActionSearch, model.ActionPaste, c.EnterAction)
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error", "fail":
	default:
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive, got %d", c.Log.MaxSizeMB)
	}
	return nil
}
