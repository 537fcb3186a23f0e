package asset

import (
	"context"
	"fmt"
	"path"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/model"
	"github.com/fhuszti/lsl-go/internal/port"
)

type uploadCompleterSrv struct {
	repo         port.AssetRepository
	strg         port.Storage
	cache        port.Cache
	tasks        port.TaskDispatcher
	assetBaseURL string
	genUUID      port.UUIDGen
}

// compile-time check: *uploadCompleterSrv must satisfy port.UploadCompleter
var _ port.UploadCompleter = (*uploadCompleterSrv)(nil)

func NewUploadCompleter(
	repo port.AssetRepository,
	strg port.Storage,
	cache port.Cache,
	tasks port.TaskDispatcher,
	assetBaseURL string,
	genUUID port.UUIDGen,
) port.UploadCompleter {
	return &uploadCompleterSrv{
		repo:         repo,
		strg:         strg,
		cache:        cache,
		tasks:        tasks,
		assetBaseURL: assetBaseURL,
		genUUID:      genUUID,
	}
}

// CompleteUpload records the asset behind in.ObjectKey as pending verification.
// Category and entity id are taken from the key when absent and must match it
// when present; a missing filename falls back to the key's base name.
func (s *uploadCompleterSrv) CompleteUpload(ctx context.Context, in port.CompleteUploadInput) (port.CompleteUploadOutput, error) {
	key := NormaliseObjectKey(in.ObjectKey)
	if key == "" {
		return port.CompleteUploadOutput{}, ErrObjectKeyRequired
	}

	category, entityID, err := ParseObjectKey(key)
	if err != nil {
		return port.CompleteUploadOutput{}, err
	}
	if c := deref(in.Category); c != "" && c != category {
		return port.CompleteUploadOutput{}, ErrCategoryMismatch
	}
	if e := deref(in.EntityID); e != "" && e != entityID {
		return port.CompleteUploadOutput{}, ErrEntityIDMismatch
	}

	filename := deref(in.Filename)
	if filename == "" {
		filename = path.Base(key)
	}

	a := &model.Asset{
		ID:              s.genUUID(),
		ObjectKey:       key,
		Category:        category,
		EntityID:        entityID,
		Filename:        &filename,
		ContentType:     nonEmpty(in.ContentType),
		FileSize:        in.FileSize,
		ETag:            nonEmpty(in.ETag),
		StorageProvider: s.strg.Name(),
		UploadStatus:    model.UploadStatusPending,
	}
	if err := s.repo.UpsertCompleted(ctx, a); err != nil {
		return port.CompleteUploadOutput{}, fmt.Errorf("persist asset %q: %w", key, err)
	}

	if err := s.cache.InvalidateAssetLists(ctx); err != nil {
		logger.Warnf(ctx, "failed to invalidate asset listings after completing %q: %v", key, err)
	}
	if err := s.tasks.EnqueueVerifyAsset(ctx, key); err != nil {
		logger.Warnf(ctx, "failed to enqueue verify task for asset %q: %v", key, err)
	}

	return port.CompleteUploadOutput{
		ObjectKey: key,
		AssetURL:  AssetURL(s.assetBaseURL, key),
		Status:    StatusAcknowledged,
	}, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
