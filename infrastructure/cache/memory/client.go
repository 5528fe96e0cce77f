// ABOUTME: In-memory response cache backed by patrickmn/go-cache
// ABOUTME: Entries expire per TTL and are purged on a cleanup interval

package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"recipe-cook-api/core/interfaces"
)

// MemoryCache implements interfaces.Cache in process memory.
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a cache whose entries default to defaultExpiration
// and are purged every cleanupInterval.
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	if defaultExpiration <= 0 {
		defaultExpiration = time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &MemoryCache{items: gocache.New(defaultExpiration, cleanupInterval)}
}

// Get retrieves a copy of a cached value.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := c.items.Get(key)
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	stored := v.([]byte)
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, nil
}

// Set stores a copy of value. A zero ttl uses the default expiration.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.items.Set(key, stored, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.items.Delete(key)
	return nil
}

// Len is the number of entries, including expired ones not yet purged.
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

// Flush removes every entry.
func (c *MemoryCache) Flush() {
	c.items.Flush()
}
