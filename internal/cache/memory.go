package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/quantmind-br/vitetags/internal/domain"
)

// DefaultMemorySize is the entry bound of a memory cache created without a size
const DefaultMemorySize = 512

// MemoryCache is a bounded in-process cache. Least recently used entries
// are evicted first; expired entries are dropped when read.
type MemoryCache struct {
	lru *lru.Cache[string, entry]
	now func() time.Time
}

// NewMemoryCache creates a memory cache holding at most size entries
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = DefaultMemorySize
	}
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: c, now: time.Now}, nil
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if e.expired(c.now()) {
		c.lru.Remove(key)
		return nil, domain.ErrCacheMiss
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set stores a value in cache with TTL. A zero TTL never expires.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.lru.Add(key, e)
	return nil
}

// Has checks if a key exists in cache
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	e, ok := c.lru.Peek(key)
	return ok && !e.expired(c.now())
}

// Delete removes a key from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Close releases cache resources
func (c *MemoryCache) Close() error {
	c.lru.Purge()
	return nil
}

// Size returns the number of entries in the cache, expired ones included
func (c *MemoryCache) Size() int {
	return c.lru.Len()
}
