// Package cache provides the render cache used to memoize expensive
// page fragments, primarily markdown converted to HTML. Entries are
// invalidated by content events, so the TTL is only a backstop.
package cache

import (
	"context"
	"time"
)

// Cache is the behaviour required by the renderers.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key. ttl <= 0 uses the configured default.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes one entry. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Stats reports driver-specific counters for the dashboard.
	Stats(ctx context.Context) (map[string]any, error)

	Close(ctx context.Context) error
}

// Config describes the high level cache selection parameters.
type Config struct {
	Driver string
	TTL    time.Duration
	Memory *MemoryConfig
	Redis  *RedisConfig
}

// MemoryConfig holds in-memory tuning knobs.
type MemoryConfig struct {
	GCInterval time.Duration
}

// RedisConfig captures connection options.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}
