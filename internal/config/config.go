// Package config handles the optional ocusage configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the ocusage configuration.
type Config struct {
	Report   ReportConfig   `toml:"report"`
	Database DatabaseConfig `toml:"database"`
}

// ReportConfig holds report defaults applied when no flag overrides them.
type ReportConfig struct {
	DefaultDays int  `toml:"default_days"`
	Limit       int  `toml:"limit"`
	NoColor     bool `toml:"no_color"`
}

// DatabaseConfig holds the database location override.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// DefaultPath returns the default config file location.
// Respects the OCUSAGE_CONFIG environment variable.
func DefaultPath() string {
	if p := os.Getenv("OCUSAGE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "ocusage", "config.toml")
	}
	return filepath.Join(home, ".config", "ocusage", "config.toml")
}

// Load reads the configuration from path, falling back to the default
// location when path is empty. A missing file is not an error: defaults
// are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{
		Report: ReportConfig{
			DefaultDays: 7,
		},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Report.DefaultDays <= 0 {
		cfg.Report.DefaultDays = 7
	}
	cfg.Database.Path = expandPath(cfg.Database.Path)

	return cfg, nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
