package cache

import (
	"context"
	"time"
)

// Cache holds serialized detail responses keyed by collection and id.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// NewNopCache returns a cache that stores nothing. Used when no Redis
// address is configured.
func NewNopCache() Cache {
	return nopCache{}
}

type nopCache struct{}

func (nopCache) Get(_ context.Context, _ string, _ any) (bool, error) { return false, nil }

func (nopCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error { return nil }

func (nopCache) Delete(_ context.Context, _ string) error { return nil }

func (nopCache) Close() error { return nil }
