package cache

import "time"

// LayeredCache checks memory before disk and promotes disk hits
type LayeredCache struct {
	memory *MemoryCache
	disk   *DiskCache
}

// NewLayeredCache creates a new layered cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks the memory layer, then the disk layer
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores the value in both layers. The memory layer always succeeds;
// a disk failure is returned but leaves the memory entry in place.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	_ = c.memory.Set(key, value, ttl)
	return c.disk.Set(key, value, ttl)
}

// Clear empties both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}

// Prune removes expired disk entries
func (c *LayeredCache) Prune() (int, error) {
	return c.disk.Prune()
}
