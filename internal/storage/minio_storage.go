package storage

import (
	"context"
	"strings"
	"time"

	"github.com/fhuszti/lsl-go/internal/config"
	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	client     minioClient
	bucketName string
}

type Strg struct {
	Client minioClient
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*Strg, error) {
	logger.Info(context.Background(), "initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &Strg{Client: client}, nil
}

// WithBucket binds the client to bucket, creating the bucket when missing.
func (c *Strg) WithBucket(ctx context.Context, bucket string) (*MinioStorage, error) {
	ok, err := c.Client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", bucket)
		if err := c.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, mapMinioErr(err)
		}
	}
	return &MinioStorage{client: c.Client, bucketName: bucket}, nil
}

func (s *MinioStorage) Name() string { return config.StorageProviderMinio }

// GeneratePresignedUploadURL signs a PUT for fileKey. MinIO does not bind the
// content type into the signature, so contentType is only logged.
func (s *MinioStorage) GeneratePresignedUploadURL(ctx context.Context, fileKey, contentType string, expiry time.Duration) (string, error) {
	logger.Infof(ctx, "generating a presigned upload link for file %q (%s) in bucket %q...", fileKey, contentType, s.bucketName)

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucketName, fileKey, expiry)
	if err != nil {
		return "", mapMinioErr(err)
	}

	return presignedURL.String(), nil
}

func (s *MinioStorage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	logger.Infof(ctx, "getting stats on file %q in bucket %q...", fileKey, s.bucketName)

	info, err := s.client.StatObject(ctx, s.bucketName, fileKey, minio.StatObjectOptions{})
	if err != nil {
		return port.FileInfo{}, mapMinioErr(err)
	}
	return port.FileInfo{
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
		ETag:        strings.Trim(info.ETag, `"`),
	}, nil
}
