package port

import (
	"context"
	"time"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
	ETag        string
}

// Storage defines the object storage operations the asset backend needs.
type Storage interface {
	// Name is the provider name recorded on every asset.
	Name() string
	GeneratePresignedUploadURL(ctx context.Context, fileKey, contentType string, expiry time.Duration) (string, error)
	StatFile(ctx context.Context, fileKey string) (FileInfo, error)
}
