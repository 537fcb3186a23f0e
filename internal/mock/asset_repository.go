package mock

import (
	"context"
	"time"

	"github.com/fhuszti/lsl-go/internal/model"
)

// AssetRepo implements port.AssetRepository for tests.
type AssetRepo struct {
	// stored values
	AssetRecord *model.Asset
	ListOut     []*model.Asset
	PendingOut  []string

	// captured inputs
	Upserted      *model.Asset
	GotFilter     model.AssetFilter
	StatusKey     string
	StatusSet     model.UploadStatus
	PendingBefore time.Time

	// errors
	UpsertErr  error
	GetErr     error
	ListErr    error
	StatusErr  error
	PendingErr error

	// call flags
	UpsertCalled  bool
	GetCalled     bool
	ListCalled    bool
	StatusCalled  bool
	PendingCalled bool
}

func (m *AssetRepo) UpsertCompleted(ctx context.Context, asset *model.Asset) error {
	m.UpsertCalled = true
	m.Upserted = asset
	return m.UpsertErr
}

func (m *AssetRepo) GetByObjectKey(ctx context.Context, objectKey string) (*model.Asset, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.AssetRecord, nil
}

func (m *AssetRepo) List(ctx context.Context, filter model.AssetFilter) ([]*model.Asset, error) {
	m.ListCalled = true
	m.GotFilter = filter
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *AssetRepo) UpdateStatus(ctx context.Context, objectKey string, status model.UploadStatus) error {
	m.StatusCalled = true
	m.StatusKey = objectKey
	m.StatusSet = status
	return m.StatusErr
}

func (m *AssetRepo) ListPendingBefore(ctx context.Context, before time.Time) ([]string, error) {
	m.PendingCalled = true
	m.PendingBefore = before
	if m.PendingErr != nil {
		return nil, m.PendingErr
	}
	return m.PendingOut, nil
}
