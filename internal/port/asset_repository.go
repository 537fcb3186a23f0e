package port

import (
	"context"
	"time"

	"github.com/fhuszti/lsl-go/internal/model"
)

// AssetRepository defines persistence operations for assets.
type AssetRepository interface {
	// UpsertCompleted inserts the asset or, when the object key is already
	// known, overwrites it while keeping stored values for nil fields.
	UpsertCompleted(ctx context.Context, asset *model.Asset) error
	GetByObjectKey(ctx context.Context, objectKey string) (*model.Asset, error)
	List(ctx context.Context, filter model.AssetFilter) ([]*model.Asset, error)
	UpdateStatus(ctx context.Context, objectKey string, status model.UploadStatus) error
	ListPendingBefore(ctx context.Context, before time.Time) ([]string, error)
}
