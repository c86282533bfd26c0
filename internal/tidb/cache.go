// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tidb

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"tidbzero/mcp/internal/logging"
	"tidbzero/mcp/internal/xdg"
)

const cacheFileName = "instance.json"

// Record is the persisted form of an auto-provisioned instance. The field
// names match what other TiDB Cloud Zero clients write, so an instance
// provisioned elsewhere is reused here and vice versa.
type Record struct {
	Host       string    `json:"host"`
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	Database   string    `json:"database"`
	InstanceID string    `json:"instance_id,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	ExpiresAt  time.Time `json:"expires_at,omitzero"`
}

// Profile converts the record into a connection profile.
func (r *Record) Profile(source Source) *Profile {
	db := r.Database
	if db == "" {
		db = DefaultDatabase
	}
	return &Profile{
		Host:      r.Host,
		Username:  r.Username,
		Password:  r.Password,
		Database:  db,
		ExpiresAt: r.ExpiresAt,
		Source:    source,
	}
}

// Cache is the single-slot store for the cached instance record. It is safe
// for concurrent use across processes: writes go through an atomic replace,
// so a reader never observes a half-written file.
type Cache struct {
	now func() time.Time
}

// NewCache returns a cache backed by the state directory.
func NewCache() *Cache {
	return &Cache{now: time.Now}
}

// path resolves the cache file location, creating the state dir if needed.
func (c *Cache) path() (string, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cacheFileName), nil
}

// Load reads the cached record. It returns ok=false when the file is
// missing, unparseable, incomplete, or expired; callers treat all of those
// as "no cache" and re-provision.
func (c *Cache) Load() (*Record, bool) {
	p, err := c.path()
	if err != nil {
		logging.Debugf("cache: resolve path: %v", err)
		return nil, false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		logging.Debugf("cache: discard unparseable record: %v", err)
		return nil, false
	}
	if r.Host == "" || r.Username == "" || r.Password == "" {
		logging.Debugf("cache: discard incomplete record")
		return nil, false
	}
	if !r.ExpiresAt.IsZero() && !c.now().Before(r.ExpiresAt) {
		logging.Debugf("cache: record expired at %s", r.ExpiresAt)
		return nil, false
	}
	return &r, true
}

// Save persists the record with an atomic replace: the JSON is written to a
// temporary file in the same directory and renamed over the cache file, so a
// crash mid-write never leaves a corrupt file visible to Load.
func (c *Cache) Save(r *Record) error {
	p, err := c.path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), cacheFileName+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, p)
}

// Invalidate removes the cached record. A missing file is not an error.
func (c *Cache) Invalidate() error {
	p, err := c.path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
