// Package config loads and stores non-secret settings in the XDG config dir.
// Database credentials never live here; they come from TIDB_* environment
// variables or the cached instance record managed by internal/tidb.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"tidbzero/mcp/internal/xdg"
)

// Settings holds non-sensitive server settings.
type Settings struct {
	Transport      string `json:"transport"`
	Addr           string `json:"addr"`
	RequestTimeout int    `json:"request_timeout_seconds"`
	MaxRows        int    `json:"max_rows"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		Transport:      "stdio",
		Addr:           ":8080",
		RequestTimeout: 30,
		MaxRows:        100,
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads settings; a missing file returns defaults. A .env file in the
// working directory is folded into the environment first so TIDB_* variables
// can be kept alongside the project instead of the shell profile.
func Load() (Settings, error) {
	_ = godotenv.Load() // optional; absence is not an error

	s := Defaults()
	p, err := path()
	if err != nil {
		return s, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = Defaults().RequestTimeout
	}
	if s.MaxRows <= 0 {
		s.MaxRows = Defaults().MaxRows
	}
	return s, nil
}

// Save writes settings with 0600 permissions.
func Save(s Settings) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
