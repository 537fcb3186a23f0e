package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/model"
	"github.com/fhuszti/lsl-go/internal/port"
)

type assetVerifierSrv struct {
	repo  port.AssetRepository
	strg  port.Storage
	cache port.Cache
}

// compile-time check: *assetVerifierSrv must satisfy port.AssetVerifier
var _ port.AssetVerifier = (*assetVerifierSrv)(nil)

func NewAssetVerifier(repo port.AssetRepository, strg port.Storage, cache port.Cache) port.AssetVerifier {
	return &assetVerifierSrv{repo: repo, strg: strg, cache: cache}
}

// VerifyAsset stats the stored object and marks the asset verified or missing.
func (s *assetVerifierSrv) VerifyAsset(ctx context.Context, objectKey string) error {
	a, err := s.repo.GetByObjectKey(ctx, objectKey)
	if err != nil {
		return err
	}

	status := model.UploadStatusVerified
	info, err := s.strg.StatFile(ctx, objectKey)
	switch {
	case errors.Is(err, ErrObjectNotFound):
		status = model.UploadStatusMissing
	case err != nil:
		return fmt.Errorf("stat object %q: %w", objectKey, err)
	case a.FileSize != nil && *a.FileSize != info.SizeBytes:
		logger.Warnf(ctx, "⚠️  asset %q declared %d bytes but storage holds %d", objectKey, *a.FileSize, info.SizeBytes)
	}

	if a.UploadStatus == status {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, objectKey, status); err != nil {
		return err
	}
	if err := s.cache.InvalidateAssetLists(ctx); err != nil {
		logger.Warnf(ctx, "failed to invalidate asset listings after verifying %q: %v", objectKey, err)
	}
	return nil
}
