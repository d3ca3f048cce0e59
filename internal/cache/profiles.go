package cache

import (
	"time"

	"flowcash/internal/core"
)

// ProfileCache holds recently loaded user profiles keyed by user ID. It is
// bounded by size and TTL; sign-out must invalidate the entry so a later
// session never sees another account's stale profile.
type ProfileCache struct {
	lru *LRUCache[core.Profile]
}

func NewProfileCache(maxSize int, ttl time.Duration) *ProfileCache {
	return &ProfileCache{lru: NewLRUCache[core.Profile](maxSize, ttl)}
}

func (c *ProfileCache) Get(userID string) (core.Profile, bool) {
	return c.lru.Get(userID)
}

func (c *ProfileCache) Set(userID string, p core.Profile) {
	c.lru.Set(userID, p)
}

// Invalidate drops the user's entry. Called on sign-out and after writes.
func (c *ProfileCache) Invalidate(userID string) {
	c.lru.Delete(userID)
}

func (c *ProfileCache) Size() int {
	return c.lru.Size()
}

// CleanExpired implements Cleaner.
func (c *ProfileCache) CleanExpired() int {
	return c.lru.CleanExpired()
}
