package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvHome, EnvHistory, EnvEvents, EnvBank, EnvLogLevel, EnvSeed} {
		t.Setenv(k, "")
	}
	// keep godotenv from picking up a stray .env in the package dir
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	cfg, err := Load()
	require.NoError(t, err)

	dir := filepath.Join(xdg, "linuxplus")
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "history.json"), cfg.HistoryPath)
	assert.Equal(t, filepath.Join(dir, "events.db"), cfg.EventsPath)
	assert.Equal(t, filepath.Join(dir, "linuxplus.log"), cfg.LogPath())
	assert.Equal(t, "", cfg.BankPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Zero(t, cfg.Seed)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvHistory, "/tmp/custom-history.json")
	t.Setenv(EnvBank, "/tmp/bank.yaml")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSeed, "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.DataDir)
	assert.Equal(t, "/tmp/custom-history.json", cfg.HistoryPath)
	assert.Equal(t, filepath.Join(home, "events.db"), cfg.EventsPath)
	assert.Equal(t, "/tmp/bank.yaml", cfg.BankPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoadBadSeed(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvSeed, "soon")

	_, err := Load()
	assert.Error(t, err)
}
