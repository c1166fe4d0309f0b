// Package cache is a small TTL map used by the in-memory adapters.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

func (e entry[T]) expired(now time.Time) bool {
	return !e.expiry.IsZero() && now.After(e.expiry)
}

type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clone   func(T) T
	now     func() time.Time
}

// New creates a cache; clone, when set, copies values on the way in and out.
func New[T any](clone func(T) T) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		clone:   clone,
		now:     time.Now,
	}
}

// WithClock replaces the time source. It is meant for tests.
func (c *Cache[T]) WithClock(now func() time.Time) *Cache[T] {
	c.now = now
	return c
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if now := c.now(); entry.expired(now) {
		c.evictExpired(key, now)
		var zero T
		return zero, false
	}
	return c.cloneValue(entry.value), true
}

// evictExpired deletes key only if the entry stored now is still expired,
// so a Set that raced in after the read lock was released survives.
func (c *Cache[T]) evictExpired(key string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.entries[key]
	if !ok || !current.expired(now) {
		return false
	}
	delete(c.entries, key)
	return true
}

// Set stores value; a non-positive ttl never expires.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	var expiry time.Time
	if ttl > 0 {
		expiry = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: expiry}
	c.mu.Unlock()
}

func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache[T]) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}
