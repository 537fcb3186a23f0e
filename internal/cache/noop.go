package cache

import (
	"context"
	"time"

	"github.com/fhuszti/lsl-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetAssetList(ctx context.Context, key string) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagAssetList(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (n *NoopCache) SetAssetList(ctx context.Context, key string, data []byte, validUntil time.Time) {
}

func (n *NoopCache) SetEtagAssetList(ctx context.Context, key string, etag string, validUntil time.Time) {
}

func (n *NoopCache) InvalidateAssetLists(ctx context.Context) error { return nil }
