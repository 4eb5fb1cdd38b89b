package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultPath resolves the OpenCode database location. The OPENCODE_DB
// environment variable wins; otherwise the platform data directory is
// used, matching where OpenCode itself writes.
func DefaultPath() string {
	if custom := os.Getenv("OPENCODE_DB"); custom != "" {
		return custom
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	var base string
	switch runtime.GOOS {
	case "darwin":
		base = filepath.Join(home, ".local", "share")
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, "opencode", "opencode.db")
}
