package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
	"github.com/redis/go-redis/v9"
)

const (
	listPrefix = "assets:list:"
	etagPrefix = "etag:"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetAssetList(ctx context.Context, key string) ([]byte, error) {
	logger.Debugf(ctx, "getting entry in cache for asset listing %q...", key)
	return c.get(ctx, getCacheKey(key, false))
}

func (c *Cache) GetEtagAssetList(ctx context.Context, key string) (string, error) {
	raw, err := c.get(ctx, getCacheKey(key, true))
	if err != nil || raw == nil {
		return "", err
	}
	return string(raw), nil
}

func (c *Cache) SetAssetList(ctx context.Context, key string, data []byte, validUntil time.Time) {
	logger.Debugf(ctx, "creating entry in cache for asset listing %q, valid until %s...", key, validUntil.Format(time.RFC1123))
	c.set(ctx, getCacheKey(key, false), data, validUntil)
}

func (c *Cache) SetEtagAssetList(ctx context.Context, key string, etag string, validUntil time.Time) {
	c.set(ctx, getCacheKey(key, true), []byte(etag), validUntil)
}

// InvalidateAssetLists scans for every listing key, ETags included, and deletes them.
func (c *Cache) InvalidateAssetLists(ctx context.Context) error {
	logger.Debug(ctx, "invalidating cached asset listings...")

	for _, pattern := range []string{listPrefix + "*", etagPrefix + listPrefix + "*"} {
		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis del failed: %w", err)
		}
	}
	return nil
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) set(ctx context.Context, key string, data []byte, validUntil time.Time) {
	ttl := time.Until(validUntil)
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for %q: %v", key, err)
	}
}

func getCacheKey(key string, etag bool) string {
	if etag {
		return etagPrefix + listPrefix + key
	}
	return listPrefix + key
}
