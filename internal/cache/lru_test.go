package cache

import (
	"testing"
	"time"

	"flowcash/internal/core"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	c.Set("a", "1")
	got, ok := c.Get("a")
	if !ok || got != "1" {
		t.Fatalf("Get(a) = %q, %v; want \"1\", true", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // refresh a, making b the eviction candidate
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive eviction")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := NewLRUCache[string](8, time.Millisecond)

	c.Set("a", "1")
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	c := NewLRUCache[string](8, time.Millisecond)

	c.Set("a", "1")
	c.Set("b", "2")
	time.Sleep(5 * time.Millisecond)

	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired() = %d, want 2", removed)
	}
	if c.Size() != 0 {
		t.Errorf("Size() after sweep = %d, want 0", c.Size())
	}
}

func TestProfileCacheInvalidate(t *testing.T) {
	c := NewProfileCache(8, time.Minute)

	c.Set("user-1", core.Profile{Name: "Maria"})
	if _, ok := c.Get("user-1"); !ok {
		t.Fatal("expected cached profile")
	}

	c.Invalidate("user-1")
	if _, ok := c.Get("user-1"); ok {
		t.Error("expected entry gone after invalidation")
	}

	// Invalidating an absent key is a no-op.
	c.Invalidate("user-2")
}

func TestProfileCacheBounded(t *testing.T) {
	c := NewProfileCache(1, time.Minute)

	c.Set("user-1", core.Profile{Name: "Maria"})
	c.Set("user-2", core.Profile{Name: "João"})

	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
	if _, ok := c.Get("user-1"); ok {
		t.Error("expected oldest profile evicted")
	}
}
