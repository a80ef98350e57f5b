// Package config resolves file locations and settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const appName = "linuxplus"

// Environment variables read by Load.
const (
	EnvHome     = "LINUXPLUS_HOME"
	EnvHistory  = "LINUXPLUS_HISTORY"
	EnvEvents   = "LINUXPLUS_EVENTS"
	EnvBank     = "LINUXPLUS_BANK"
	EnvLogLevel = "LINUXPLUS_LOG_LEVEL"
	EnvSeed     = "LINUXPLUS_SEED"
)

// Config holds resolved settings. Command-line flags are applied on top by
// the cmd package.
type Config struct {
	DataDir     string
	HistoryPath string
	// EventsPath is the SQLite event log. Empty disables it.
	EventsPath string
	// BankPath replaces the built-in question bank when set.
	BankPath string
	LogLevel string
	// Seed fixes question selection order. Zero means random.
	Seed uint64
}

// LogPath is where the TUI writes its log.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, appName+".log")
}

// Load reads an optional .env file, then the environment, then falls back to
// defaults under the XDG data directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := os.Getenv(EnvHome)
	if dataDir == "" {
		d, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = d
	}

	cfg := &Config{
		DataDir:     dataDir,
		HistoryPath: getenvDefault(EnvHistory, filepath.Join(dataDir, "history.json")),
		EventsPath:  getenvDefault(EnvEvents, filepath.Join(dataDir, "events.db")),
		BankPath:    os.Getenv(EnvBank),
		LogLevel:    getenvDefault(EnvLogLevel, "warn"),
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: %s=%q is not a valid seed: %w", EnvSeed, v, err)
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

// DefaultDataDir resolves the data directory in priority order:
// 1. $XDG_DATA_HOME/linuxplus
// 2. ~/.local/share/linuxplus
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
