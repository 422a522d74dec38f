package cache

import (
	"context"
	"sync"
	"time"

	"github.com/okian/broodsheet/pkg/metrics"
)

// Default cache configuration constants.
const (
	defaultTTL      = 24 * time.Hour
	defaultCapacity = 10000
)

// Entry is a cached rendered response.
type Entry struct {
	Body        []byte
	ContentType string
	StoredAt    time.Time
}

// Cache is the shared key-value store for rendered responses. It is a
// best-effort memoization layer, not a consistency mechanism: concurrent
// misses for the same key may both compute, and same-key writes are
// idempotent.
type Cache interface {
	// Get returns the entry for key if present and fresh.
	Get(ctx context.Context, key string) (Entry, bool)

	// Set stores an entry under key.
	Set(ctx context.Context, key string, e Entry)

	// Len returns the current number of live entries.
	Len(ctx context.Context) int
}

// InMemoryCache implements Cache with a TTL map and capacity bound.
type InMemoryCache struct {
	ttl      time.Duration
	capacity int
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]Entry
}

// Option applies a configuration option to the InMemoryCache.
type Option func(*InMemoryCache)

// WithTTL sets the freshness window for entries.
func WithTTL(ttl time.Duration) Option {
	return func(c *InMemoryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCapacity bounds the number of stored entries.
func WithCapacity(capacity int) Option {
	return func(c *InMemoryCache) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// WithClock overrides the time source, used by tests to drive expiry.
func WithClock(now func() time.Time) Option {
	return func(c *InMemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewInMemoryCache creates a cache with configuration options.
func NewInMemoryCache(opts ...Option) *InMemoryCache {
	c := &InMemoryCache{
		ttl:      defaultTTL,
		capacity: defaultCapacity,
		now:      time.Now,
		entries:  make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entry for key if present and within its freshness window.
func (c *InMemoryCache) Get(ctx context.Context, key string) (Entry, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		metrics.RecordCacheMiss()
		return Entry{}, false
	}
	if c.now().Sub(e.StoredAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		metrics.RecordCacheMiss()
		return Entry{}, false
	}
	metrics.RecordCacheHit()
	return e, true
}

// Set stores an entry under key, evicting the stalest entries when over
// capacity.
func (c *InMemoryCache) Set(ctx context.Context, key string, e Entry) {
	if e.StoredAt.IsZero() {
		e.StoredAt = c.now()
	}

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = e
	size := len(c.entries)
	c.mu.Unlock()

	metrics.RecordCacheStore()
	metrics.UpdateCacheEntries(size)
}

// Len returns the current number of live entries.
func (c *InMemoryCache) Len(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldest drops the entry with the oldest StoredAt. Caller holds the
// write lock.
func (c *InMemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.StoredAt.Before(oldest) {
			oldestKey = k
			oldest = e.StoredAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
