package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/intentia/internal/model"
)

func TestKey(t *testing.T) {
	vocab := []string{"command", "question", "kitchen"}

	a := Key("turn on the light", vocab)
	if a != Key("  turn on the light ", vocab) {
		t.Error("surrounding whitespace should not change the key")
	}
	if a == Key("turn off the light", vocab) {
		t.Error("different text produced the same key")
	}
	if a == Key("turn on the light", append(vocab, "hall")) {
		t.Error("different vocabulary produced the same key")
	}
	if a == Key("turn on the light", []string{"command", "questionkitchen"}) {
		t.Error("label boundaries must be part of the key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss")
	}

	value := []byte(`[1,2]`)
	if err := c.Set("k", value, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'x'

	got, ok := c.Get("k")
	if !ok || string(got) != `[1,2]` {
		t.Errorf("Get() = %q, %v; stored value must be a copy", got, ok)
	}

	if err := c.Set("short", []byte(`1`), time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("short"); ok {
		t.Error("expected expired entry to miss")
	}

	_ = c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", []byte(`{"a":1}`), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok := c.Get("k")
	if !ok || string(got) != `{"a":1}` {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	if err := c.Set("bad", []byte(`not json`), 0); err == nil {
		t.Error("expected error for non-JSON value")
	}

	if err := c.Set("old", []byte(`1`), -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	removed, err := c.Prune()
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}
	if _, ok := c.Get("k"); !ok {
		t.Error("live entry should survive Prune")
	}

	if err := os.WriteFile(c.path("corrupt"), []byte("{"), 0644); err != nil {
		t.Fatalf("write corrupt entry: %v", err)
	}
	if _, ok := c.Get("corrupt"); ok {
		t.Error("corrupt entry should miss")
	}
	if _, err := os.Stat(c.path("corrupt")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("Clear should remove the directory")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte(`[0.5]`), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	_ = c.memory.Clear()

	got, ok := c.Get("k")
	if !ok || string(got) != `[0.5]` {
		t.Fatalf("Get() = %q, %v", got, ok)
	}
	if _, ok := c.memory.Get("k"); !ok {
		t.Error("disk hit should be promoted to memory")
	}
}

func TestNew(t *testing.T) {
	if New(model.CacheConfig{Enabled: false}) != nil {
		t.Error("disabled cache should be nil")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, MemoryTTL: time.Minute}).(*MemoryCache); !ok {
		t.Error("cache without dir should be memory only")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, Dir: t.TempDir()}).(*LayeredCache); !ok {
		t.Error("cache with dir should be layered")
	}
}
