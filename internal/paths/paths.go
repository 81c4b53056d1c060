// Package paths centralizes the file and directory names quickpaths uses.
package paths

import (
	"os"
	"path/filepath"
)

// Data directory file names.
const (
	AppName     = "quickpaths"
	ConfigFile  = "config.toml"
	CatalogFile = "paths.csv"
	LogFile     = "quickpaths.log"
)

// EnvDir overrides the data directory when set.
const EnvDir = "QUICKPATHS_DIR"

// DataDir provides path construction methods rooted at a data directory.
type DataDir struct {
	Root string
}

// Default returns the data directory: $QUICKPATHS_DIR, else
// $XDG_CONFIG_HOME/quickpaths, else ~/.config/quickpaths.
func Default() DataDir {
	if dir := os.Getenv(EnvDir); dir != "" {
		return DataDir{Root: dir}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return DataDir{Root: filepath.Join(xdg, AppName)}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DataDir{Root: filepath.Join(".", "."+AppName)}
	}
	return DataDir{Root: filepath.Join(home, ".config", AppName)}
}

// Config returns the full path to the config file.
func (d DataDir) Config() string { return filepath.Join(d.Root, ConfigFile) }

// Catalog returns the full path to the default catalog file.
func (d DataDir) Catalog() string { return filepath.Join(d.Root, CatalogFile) }

// Log returns the full path to the log file.
func (d DataDir) Log() string { return filepath.Join(d.Root, LogFile) }
