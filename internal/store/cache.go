package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/davistroy/radioforms-sub003/internal/config"
)

// Cache is the read-through cache contract used by the data-access layer.
// Each DAO instance owns its cache object; there is no process-wide cache
// state. Keys are derived from the read method and its arguments, and any
// write on the owning entity type invalidates every cached read for it
// (coarse-grained invalidation, not per-row).
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value for key and whether a live entry exists.
	Get(key string) (any, bool)

	// Set stores value under key. Expiry is implementation-defined.
	Set(key string, value any)

	// InvalidateAll drops every entry. Called after each successful
	// create/update/delete, before the write returns to the caller, so a
	// subsequent read can never observe a stale entry.
	InvalidateAll()
}

// NewCache constructs the cache implementation selected by cfg: a TTL-bound
// in-memory cache when enabled, otherwise a no-op cache that keeps every
// read going to the database.
func NewCache(cfg config.Cache) Cache {
	if !cfg.Enabled {
		return NopCache()
	}
	return NewMemoryCache(cfg.TTL)
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// memoryCache is a TTL-bound in-memory [Cache]. Expired entries are dropped
// lazily on read; the coarse InvalidateAll on every write keeps the map from
// accumulating garbage in practice.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewMemoryCache returns an in-memory [Cache] whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) Cache {
	return &memoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *memoryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

func (c *memoryCache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

func (c *memoryCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Sweeper is implemented by caches that can drop expired entries in bulk.
// Expiry is otherwise lazy, on read, so keys nothing reads again would pin
// memory until the next write invalidation.
type Sweeper interface {
	Sweep()
}

// Sweep removes every expired entry.
func (c *memoryCache) Sweep() {
	now := time.Now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

type nopCache struct{}

// NopCache returns a [Cache] that stores nothing. Used when caching is
// disabled and in tests that must observe every database read.
func NopCache() Cache {
	return nopCache{}
}

func (nopCache) Get(string) (any, bool) { return nil, false }
func (nopCache) Set(string, any)        {}
func (nopCache) InvalidateAll()         {}

// cacheKey builds a deterministic cache key from a read method name and its
// arguments.
func cacheKey(table, method string, args ...any) string {
	var b strings.Builder
	b.WriteString(table)
	b.WriteByte('.')
	b.WriteString(method)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%v", arg)
	}
	b.WriteByte(')')
	return b.String()
}
