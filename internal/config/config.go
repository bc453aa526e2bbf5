package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings flightsearch reads at startup.
type Config struct {
	DatabasePath string
	LogPath      string
	LogLevel     string
	PrefsPath    string
}

const (
	defaultConfigPath   = "~/.config/flightsearch/config.toml"
	defaultDatabasePath = "~/.local/share/flightsearch/flights.db"
	defaultLogPath      = "~/.local/share/flightsearch/flightsearch.log"
	defaultPrefsPath    = "~/.config/flightsearch/prefs.toml"
	defaultLogLevel     = "info"
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DatabasePath: mustExpand(defaultDatabasePath),
		LogPath:      mustExpand(defaultLogPath),
		LogLevel:     defaultLogLevel,
		PrefsPath:    mustExpand(defaultPrefsPath),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DatabasePath string `toml:"database_path"`
		LogPath      string `toml:"log_path"`
		LogLevel     string `toml:"log_level"`
		PrefsPath    string `toml:"prefs_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.DatabasePath); v != "" {
		cfg.DatabasePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.PrefsPath); v != "" {
		cfg.PrefsPath = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		if _, ok := validLogLevels[v]; !ok {
			return Config{}, fmt.Errorf("invalid log_level %q", raw.LogLevel)
		}
		cfg.LogLevel = v
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
