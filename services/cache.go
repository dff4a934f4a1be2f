package services

import (
	"sync"
	"time"
)

// CatalogTTL is how long catalog responses are memoized. The underlying
// datasets change between semesters, not between requests.
const CatalogTTL = time.Hour

// TTLCache is a process-wide write-once-per-key memo with expiry. There is
// no eviction beyond the TTL check on read.
type TTLCache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]ttlEntry[T]
	now     func() time.Time
}

type ttlEntry[T any] struct {
	value   T
	expires time.Time
}

func NewTTLCache[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		ttl:     ttl,
		entries: map[string]ttlEntry[T]{},
		now:     time.Now,
	}
}

func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expires) {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ttlEntry[T]{value: value, expires: c.now().Add(c.ttl)}
}

func (c *TTLCache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
