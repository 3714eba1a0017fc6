package cache

import (
	"context"
	"time"
)

// NoopCache never stores anything; used when Redis is not configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) Get(_ context.Context, _ string) ([]byte, bool, error) { return nil, false, nil }
func (n *NoopCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}
func (n *NoopCache) Close() error { return nil }
