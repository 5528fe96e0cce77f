// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores cooked responses. Implementations are in-memory, Redis or
// SQLite backed.
//
// Example usage:
//
//	key := "cook:" + digest
//	if body, err := cache.Get(ctx, key); err == nil {
//		return body, nil
//	}
//	body := cookAndEncode()
//	_ = cache.Set(ctx, key, body, 10*time.Minute)
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrCacheMiss when the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given TTL.
	// If ttl is 0, the backend's default expiration applies.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
