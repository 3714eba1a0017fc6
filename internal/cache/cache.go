package cache

import (
	"context"
	"time"
)

// Cache stores encoded fetch responses by key.
type Cache interface {
	// Get returns the stored value. ok is false on a miss.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Close() error
}
