package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Report.DefaultDays)
	assert.Equal(t, 0, cfg.Report.Limit)
	assert.False(t, cfg.Report.NoColor)
	assert.Empty(t, cfg.Database.Path)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[report]
default_days = 30
limit = 20
no_color = true

[database]
path = "/data/opencode.db"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Report.DefaultDays)
	assert.Equal(t, 20, cfg.Report.Limit)
	assert.True(t, cfg.Report.NoColor)
	assert.Equal(t, "/data/opencode.db", cfg.Database.Path)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("report = ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_NonPositiveDefaultDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[report]\ndefault_days = -1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Report.DefaultDays)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("OCUSAGE_CONFIG", "/etc/ocusage.toml")
	assert.Equal(t, "/etc/ocusage.toml", DefaultPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data", "x.db"), expandPath("~/data/x.db"))
	assert.Equal(t, "/abs/x.db", expandPath("/abs/x.db"))
	assert.Empty(t, expandPath(""))
}
