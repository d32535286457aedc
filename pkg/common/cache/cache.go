package cache

import (
	"context"
	"time"
)

// LocalCache defines the interface for in-process TTL caches.
type LocalCache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	SetWithTTL(key string, value V, ttl time.Duration)
	GetOrSet(key string, compute func() (V, error)) (V, error)
	GetOrSetWithTTL(key string, ttl time.Duration, compute func() (V, error)) (V, error)
	Delete(key string) bool
	DeletePrefix(prefix string) int
	Clear()
	Close()
}

// CacheEngine defines the standard interface for remote caching operations.
type CacheEngine interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	DeleteBulk(ctx context.Context, keys []string) error
	Close()
}
