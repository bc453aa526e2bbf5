package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local/share/flightsearch/flights.db"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(home, ".local/share/flightsearch/flightsearch.log"), cfg.LogPath)
	assert.Equal(t, filepath.Join(home, ".config/flightsearch/prefs.toml"), cfg.PrefsPath)
	assert.Equal(t, defaultLogLevel, cfg.LogLevel)
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
database_path = "  ~/data/flights.db  "
log_path = "/var/tmp/fs.log"
log_level = " DEBUG "
prefs_path = "~/prefs.toml"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data/flights.db"), cfg.DatabasePath)
	assert.Equal(t, "/var/tmp/fs.log", cfg.LogPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, "prefs.toml"), cfg.PrefsPath)
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
database_path = "   "
log_level = ""
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`database_path = [`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidLogLevelFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "chatty"`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "a/b"), got)
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	_, err := expandPath("   ")
	assert.Error(t, err)
}

func TestDefault_UnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	for _, p := range []string{cfg.DatabasePath, cfg.LogPath, cfg.PrefsPath} {
		assert.True(t, strings.HasPrefix(p, home), "%q should be under %q", p, home)
	}
}
