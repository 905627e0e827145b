package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "~/.config/fabric/loom", cfg.Storage.Path)
	assert.Equal(t, "loom.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, "127.0.0.1", cfg.Daemon.Host)
	assert.Equal(t, 8732, cfg.Daemon.Port)
	assert.Equal(t, 4, cfg.Workspace.TopTasksCount)
	assert.Equal(t, "#3B82F6", cfg.Workspace.DefaultTaskColor)
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("daemon:\n  port: 9999\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Daemon.Port)
	// Untouched sections keep defaults.
	assert.Equal(t, "127.0.0.1", cfg.Daemon.Host)
	assert.Equal(t, "loom.db", cfg.Storage.SQLiteFile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("daemon: [not: valid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrCreateAt_WritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := LoadOrCreateAt(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// File now exists and round-trips.
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := LoadOrCreateAt(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestDatabasePath_JoinsPathAndFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Path = "/tmp/loom-test"

	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/loom-test", "loom.db"), path)
}

func TestDatabasePath_ExpandsHome(t *testing.T) {
	cfg := DefaultConfig()

	path, err := cfg.DatabasePath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "fabric", "loom", "loom.db"), path)
}

func TestAddr(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "127.0.0.1:8732", cfg.Addr())
}
