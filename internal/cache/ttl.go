// Package cache holds a process-local TTL cache for read-mostly display
// data. Concurrent misses on one key may fetch upstream more than once;
// whichever write lands last wins.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	payload   T
	fetchedAt time.Time
}

// TTL is a string-keyed cache whose entries expire ttl after being set.
// Now is injectable so tests can drive the clock.
type TTL[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[T]
}

func NewTTL[T any](ttl time.Duration, now func() time.Time) *TTL[T] {
	if now == nil {
		now = time.Now
	}
	return &TTL[T]{ttl: ttl, now: now, entries: make(map[string]entry[T])}
}

// Get returns the cached payload if it is younger than the TTL.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.payload, true
}

// GetStale returns the cached payload regardless of age. Used to keep
// serving during storage outages.
func (c *TTL[T]) GetStale(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	return e.payload, ok
}

// Set stores payload stamped with the current time.
func (c *TTL[T]) Set(key string, payload T) {
	c.mu.Lock()
	c.entries[key] = entry[T]{payload: payload, fetchedAt: c.now()}
	c.mu.Unlock()
}
