package mock

import (
	"context"
	"time"
)

// Cache implements port.Cache for tests.
type Cache struct {
	// stored values
	ListOut []byte

	// etag values
	EtagList string

	// captured inputs
	GotKey string

	// errors
	GetListErr     error
	GetEtagListErr error
	InvalidateErr  error

	// call flags
	GetListCalled     bool
	GetEtagListCalled bool
	SetListCalled     bool
	SetEtagListCalled bool
	InvalidateCalled  bool
}

func (c *Cache) GetAssetList(ctx context.Context, key string) ([]byte, error) {
	c.GetListCalled = true
	c.GotKey = key
	if c.GetListErr != nil {
		return nil, c.GetListErr
	}
	return c.ListOut, nil
}

func (c *Cache) GetEtagAssetList(ctx context.Context, key string) (string, error) {
	c.GetEtagListCalled = true
	if c.GetEtagListErr != nil {
		return "", c.GetEtagListErr
	}
	return c.EtagList, nil
}

func (c *Cache) SetAssetList(ctx context.Context, key string, data []byte, validUntil time.Time) {
	c.SetListCalled = true
	c.GotKey = key
	c.ListOut = data
}

func (c *Cache) SetEtagAssetList(ctx context.Context, key string, etag string, validUntil time.Time) {
	c.SetEtagListCalled = true
	c.EtagList = etag
}

func (c *Cache) InvalidateAssetLists(ctx context.Context) error {
	c.InvalidateCalled = true
	return c.InvalidateErr
}
