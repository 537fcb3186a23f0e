package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/lsl-go/internal/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type TestBucket struct {
	Name    string
	Storage *storage.MinioStorage
	// Admin is a raw client for assertions and cleanup.
	Admin   *minio.Client
	Cleanup func() error
}

// SetupTestBucket creates a uniquely named bucket through the storage layer.
func SetupTestBucket(ctx context.Context, cfg MinIOConfig) (*TestBucket, error) {
	admin, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin client: %w", err)
	}

	strg, err := storage.NewMinioClient(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.UseSSL)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("lsl-test-%d", time.Now().UnixNano())
	bucket, err := strg.WithBucket(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not create bucket %q: %w", name, err)
	}

	cleanup := func() error {
		for obj := range admin.ListObjects(ctx, name, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				continue
			}
			_ = admin.RemoveObject(ctx, name, obj.Key, minio.RemoveObjectOptions{})
		}
		if err := admin.RemoveBucket(ctx, name); err != nil {
			return fmt.Errorf("could not remove bucket %q: %w", name, err)
		}
		return nil
	}

	return &TestBucket{Name: name, Storage: bucket, Admin: admin, Cleanup: cleanup}, nil
}
