package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ppiankov/intentia/internal/model"
)

// Cache defines the interface for caching scored labels
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Clear() error
}

// Pruner is implemented by caches that keep expired entries on disk
type Pruner interface {
	Prune() (int, error)
}

// Key derives a cache key from an utterance and the vocabulary it was
// scored against. A changed vocabulary (new location, new label) misses.
func Key(text string, vocabulary []string) string {
	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(text)))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(vocabulary, "\x1f")))
	return "intentia-v1-" + hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by cfg: a memory layer in front of a disk
// layer. It returns nil when caching is disabled.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
