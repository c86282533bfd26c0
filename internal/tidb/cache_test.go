// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tidb

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testRecord(expiresAt time.Time) *Record {
	return &Record{
		Host:       "gateway01.us-west-2.prod.aws.tidbcloud.com",
		Username:   "2u95claK9BoHo3r.root",
		Password:   "secret",
		Database:   "test",
		InstanceID: "inst-123",
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
		ExpiresAt:  expiresAt,
	}
}

func TestCacheSaveLoad(t *testing.T) {
	t.Setenv("TIDB_ZERO_STATE_DIR", t.TempDir())

	c := NewCache()
	want := testRecord(time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second))
	if err := c.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, ok := c.Load()
	if !ok {
		t.Fatal("Load() returned absent after Save()")
	}
	if got.Host != want.Host || got.Username != want.Username || got.Password != want.Password {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, want.ExpiresAt)
	}
}

func TestCacheLoadMissing(t *testing.T) {
	t.Setenv("TIDB_ZERO_STATE_DIR", t.TempDir())

	if _, ok := NewCache().Load(); ok {
		t.Error("Load() on empty dir returned a record")
	}
}

func TestCacheLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIDB_ZERO_STATE_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, cacheFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := NewCache().Load(); ok {
		t.Error("Load() on corrupt file returned a record")
	}
}

func TestCacheLoadIncomplete(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIDB_ZERO_STATE_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, cacheFileName), []byte(`{"host":"h"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := NewCache().Load(); ok {
		t.Error("Load() on record without credentials returned it")
	}
}

func TestCacheLoadExpired(t *testing.T) {
	t.Setenv("TIDB_ZERO_STATE_DIR", t.TempDir())

	c := NewCache()
	if err := c.Save(testRecord(time.Now().Add(-time.Minute))); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Load(); ok {
		t.Error("Load() returned an expired record")
	}
}

func TestCacheLoadNoExpiry(t *testing.T) {
	t.Setenv("TIDB_ZERO_STATE_DIR", t.TempDir())

	// A record without an expiry never expires; the original clients write
	// such records when the API omits expiresAt.
	c := NewCache()
	if err := c.Save(testRecord(time.Time{})); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Load(); !ok {
		t.Error("Load() discarded a record without expiry")
	}
}

func TestCacheSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIDB_ZERO_STATE_DIR", dir)

	c := NewCache()
	if err := c.Save(testRecord(time.Now().Add(time.Hour))); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != cacheFileName {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("state dir contains %v, want only %s", names, cacheFileName)
	}
}

func TestCacheInvalidate(t *testing.T) {
	t.Setenv("TIDB_ZERO_STATE_DIR", t.TempDir())

	c := NewCache()
	if err := c.Invalidate(); err != nil {
		t.Errorf("Invalidate() with no file: %v", err)
	}

	if err := c.Save(testRecord(time.Now().Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := c.Invalidate(); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	if _, ok := c.Load(); ok {
		t.Error("Load() returned a record after Invalidate()")
	}
}
