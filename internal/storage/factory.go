package storage

import (
	"context"
	"fmt"

	"github.com/fhuszti/lsl-go/internal/config"
	"github.com/fhuszti/lsl-go/internal/port"
)

// NewStorage builds the provider selected by cfg.StorageProvider.
func NewStorage(ctx context.Context, cfg *config.Settings) (port.Storage, error) {
	switch cfg.StorageProvider {
	case config.StorageProviderMinio:
		c, err := NewMinioClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		strg, err := c.WithBucket(ctx, cfg.StorageBucket)
		if err != nil {
			return nil, err
		}
		return strg, nil
	case config.StorageProviderS3:
		strg, err := NewS3Storage(ctx, S3Config{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Bucket:          cfg.StorageBucket,
		})
		if err != nil {
			return nil, err
		}
		return strg, nil
	case config.StorageProviderFake:
		return NewFakeStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.StorageProvider)
	}
}
