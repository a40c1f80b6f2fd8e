package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists entries as one JSON file per key
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a new disk cache
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{
		dir: dir,
		ttl: ttl,
	}
}

type diskEntry struct {
	Data      json.RawMessage `json:"data"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Get reads an entry, removing it if expired or corrupt
func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

// Set writes value, which must be valid JSON, via a temp file and rename
// so readers never see a partial entry
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	if !json.Valid(value) {
		return fmt.Errorf("cache value for %s is not JSON", key)
	}

	data, err := json.Marshal(diskEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}

	if err := os.Rename(tmpName, c.path(key)); err != nil {
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}

// Clear removes the cache directory
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Prune deletes expired entries and returns how many were removed
func (c *DiskCache) Prune() (int, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.cache"))
	if err != nil {
		return 0, fmt.Errorf("list cache dir: %w", err)
	}

	removed := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry diskEntry
		if err := json.Unmarshal(data, &entry); err != nil || time.Now().After(entry.ExpiresAt) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".cache")
}
