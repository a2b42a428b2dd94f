package store

import (
	"fmt"
	"sync"
	"time"
)

// Cache is a concurrency-safe in-memory cache in front of the ingestion
// boundary. Entries are whole immutable results replaced as a unit; there
// are no partial updates. Keys are expected to come from BucketKey so a
// source is fetched at most once per time bucket.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	maxAge  time.Duration
}

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// NewCache creates a Cache whose entries expire after maxAge. A
// non-positive maxAge disables expiry.
func NewCache[T any](maxAge time.Duration) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		maxAge:  maxAge,
	}
}

// BucketKey builds a cache key from the source identity and the fetch time
// truncated to the bucket size.
func BucketKey(source string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		return source
	}
	return fmt.Sprintf("%s:%d", source, at.Truncate(bucket).Unix())
}

// Get returns the cached value for key if present and fresh.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.maxAge > 0 && time.Since(e.storedAt) > c.maxAge {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores a value under key, replacing any previous entry, and drops
// expired entries while it holds the lock.
func (c *Cache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxAge > 0 {
		cutoff := time.Now().Add(-c.maxAge)
		for k, e := range c.entries {
			if e.storedAt.Before(cutoff) {
				delete(c.entries, k)
			}
		}
	}

	c.entries[key] = entry[T]{value: value, storedAt: time.Now()}
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
