package port

import (
	"context"
	"time"
)

// Cache provides caching capabilities for asset listings. Entries are keyed by
// a string derived from the listing filter.
type Cache interface {
	GetAssetList(ctx context.Context, key string) ([]byte, error)
	GetEtagAssetList(ctx context.Context, key string) (string, error)
	SetAssetList(ctx context.Context, key string, data []byte, validUntil time.Time)
	SetEtagAssetList(ctx context.Context, key string, etag string, validUntil time.Time)
	// InvalidateAssetLists drops every cached listing and its ETag.
	InvalidateAssetLists(ctx context.Context) error
}
