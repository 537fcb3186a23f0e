package port

import (
	"context"
	"time"

	"github.com/fhuszti/lsl-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// UploadURLIssuer allocates an object key and a presigned PUT URL for it.
type UploadURLIssuer interface {
	IssueUploadURL(ctx context.Context, in IssueUploadURLInput) (IssueUploadURLOutput, error)
}
type IssueUploadURLInput struct {
	Category    string
	EntityID    string
	Filename    string
	ContentType string
}
type IssueUploadURLOutput struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
	AssetURL  string `json:"asset_url"`
}

// UploadCompleter records that the client finished writing an object.
type UploadCompleter interface {
	CompleteUpload(ctx context.Context, in CompleteUploadInput) (CompleteUploadOutput, error)
}
type CompleteUploadInput struct {
	ObjectKey   string
	Category    *string
	EntityID    *string
	Filename    *string
	ContentType *string
	FileSize    *int64
	ETag        *string
}
type CompleteUploadOutput struct {
	ObjectKey string `json:"object_key"`
	AssetURL  string `json:"asset_url"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// AssetLister returns the most recent assets.
type AssetLister interface {
	ListAssets(ctx context.Context, in ListAssetsInput) (*ListAssetsOutput, error)
}
type ListAssetsInput struct {
	Limit    int
	Category string
	EntityID string
}
type AssetListItem struct {
	ObjectKey    string    `json:"object_key"`
	Category     string    `json:"category"`
	EntityID     string    `json:"entity_id"`
	Filename     *string   `json:"filename"`
	ContentType  *string   `json:"content_type"`
	FileSize     *int64    `json:"file_size"`
	ETag         *string   `json:"etag"`
	UploadStatus int       `json:"upload_status"`
	CreatedAt    time.Time `json:"created_at"`
	AssetURL     string    `json:"asset_url"`
}
type ListAssetsOutput struct {
	Items      []AssetListItem `json:"items"`
	ValidUntil time.Time       `json:"-"`
}

// AssetVerifier checks that a completed asset really exists in storage.
type AssetVerifier interface {
	VerifyAsset(ctx context.Context, objectKey string) error
}

// BacklogVerifier triggers verification for assets left pending.
type BacklogVerifier interface {
	VerifyBacklog(ctx context.Context) error
}
