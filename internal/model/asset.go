package model

import (
	"time"

	"github.com/fhuszti/lsl-go/internal/uuid"
)

type UploadStatus int

const (
	UploadStatusPending  UploadStatus = 0
	UploadStatusVerified UploadStatus = 1
	UploadStatusMissing  UploadStatus = 2
)

func (s UploadStatus) String() string {
	switch s {
	case UploadStatusPending:
		return "pending"
	case UploadStatusVerified:
		return "verified"
	case UploadStatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Asset is one uploaded object, keyed by its object key.
type Asset struct {
	ID              uuid.UUID    `json:"id"`
	ObjectKey       string       `json:"object_key"`
	Category        string       `json:"category"`
	EntityID        string       `json:"entity_id"`
	Filename        *string      `json:"filename"`
	ContentType     *string      `json:"content_type"`
	FileSize        *int64       `json:"file_size"`
	ETag            *string      `json:"etag"`
	StorageProvider string       `json:"storage_provider"`
	UploadStatus    UploadStatus `json:"upload_status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// AssetFilter narrows a listing. Empty strings match everything.
type AssetFilter struct {
	Category string
	EntityID string
	Limit    int
}
