package service

import (
	"context"
	"time"
)

// Cache is the subset of cache operations the services depend on. The redis
// client satisfies it; tests substitute an in-memory implementation.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
