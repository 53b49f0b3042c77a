// Package cache provides the owner-keyed, TTL-expiring cache used for
// clinic settings. The cache is an explicit dependency handed to the
// service that needs it, never a package-level singleton; entries drop
// on TTL expiry, on explicit invalidation, and when the owner key
// changes (a different key simply misses).
package cache

import (
	"context"
	"time"
)

// Cache is a typed key/value store with a fixed TTL per entry.
type Cache[T any] interface {
	// Get returns the cached value for key if present and unexpired.
	Get(ctx context.Context, key string) (T, bool, error)

	// Set stores value under key, replacing any previous entry and
	// restarting its TTL.
	Set(ctx context.Context, key string, value T) error

	// Delete removes the entry for key, if any.
	Delete(ctx context.Context, key string) error
}

// Clock returns the current time; tests substitute a fake.
type Clock func() time.Time
