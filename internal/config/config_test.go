// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s != Defaults() {
		t.Errorf("Load() = %+v, want defaults %+v", s, Defaults())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := Settings{Transport: "http", Addr: ":9090", RequestTimeout: 10, MaxRows: 50}
	if err := Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadSanitizesNonPositiveValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "tidb-zero-mcp")
	if err := os.MkdirAll(cfgDir, 0o700); err != nil {
		t.Fatal(err)
	}
	raw := []byte(`{"transport":"stdio","request_timeout_seconds":0,"max_rows":-5}`)
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), raw, 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.RequestTimeout != Defaults().RequestTimeout {
		t.Errorf("RequestTimeout = %d, want default", s.RequestTimeout)
	}
	if s.MaxRows != Defaults().MaxRows {
		t.Errorf("MaxRows = %d, want default", s.MaxRows)
	}
}
