// Package xdg provides helpers to resolve local directories for tidb-zero-mcp.
// Non-secret settings live under the XDG config directory, while the cached
// instance record keeps the well-known ~/.tidb-cloud-zero-mcp location so that
// instances provisioned by other TiDB Cloud Zero clients are picked up.
//
// The package handles fallback to traditional locations when XDG environment
// variables are not set and ensures proper permissions for security-sensitive
// directories like credential storage.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the XDG config directory for tidb-zero-mcp.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/tidb-zero-mcp when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "tidb-zero-mcp")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// StateDir returns the directory holding the cached instance record.
// TIDB_ZERO_STATE_DIR overrides the default ~/.tidb-cloud-zero-mcp location,
// which is kept for compatibility with other TiDB Cloud Zero clients.
// The directory is created with private permissions (0700) if missing.
func StateDir() (string, error) {
	dir := os.Getenv("TIDB_ZERO_STATE_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".tidb-cloud-zero-mcp")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
