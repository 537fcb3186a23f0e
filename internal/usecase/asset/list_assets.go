package asset

import (
	"context"
	"time"

	"github.com/fhuszti/lsl-go/internal/model"
	"github.com/fhuszti/lsl-go/internal/port"
)

type assetListerSrv struct {
	repo         port.AssetRepository
	assetBaseURL string
}

// compile-time check: *assetListerSrv must satisfy port.AssetLister
var _ port.AssetLister = (*assetListerSrv)(nil)

func NewAssetLister(repo port.AssetRepository, assetBaseURL string) port.AssetLister {
	return &assetListerSrv{repo: repo, assetBaseURL: assetBaseURL}
}

// ListAssets returns the newest assets first. The limit is clamped to
// [1, MaxListLimit] with DefaultListLimit for zero.
func (s *assetListerSrv) ListAssets(ctx context.Context, in port.ListAssetsInput) (*port.ListAssetsOutput, error) {
	limit := in.Limit
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	assets, err := s.repo.List(ctx, model.AssetFilter{
		Category: in.Category,
		EntityID: in.EntityID,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]port.AssetListItem, 0, len(assets))
	for _, a := range assets {
		items = append(items, port.AssetListItem{
			ObjectKey:    a.ObjectKey,
			Category:     a.Category,
			EntityID:     a.EntityID,
			Filename:     a.Filename,
			ContentType:  a.ContentType,
			FileSize:     a.FileSize,
			ETag:         a.ETag,
			UploadStatus: int(a.UploadStatus),
			CreatedAt:    a.CreatedAt,
			AssetURL:     AssetURL(s.assetBaseURL, a.ObjectKey),
		})
	}

	return &port.ListAssetsOutput{
		Items:      items,
		ValidUntil: time.Now().Add(ListValidity),
	}, nil
}
