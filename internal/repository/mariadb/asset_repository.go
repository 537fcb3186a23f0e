package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/model"
	"github.com/fhuszti/lsl-go/internal/port"
	"github.com/fhuszti/lsl-go/internal/usecase/asset"
)

type AssetRepository struct {
	db *sql.DB
}

// compile-time check: *AssetRepository must satisfy port.AssetRepository
var _ port.AssetRepository = (*AssetRepository)(nil)

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, object_key, category, entity_id, filename, content_type, file_size, etag, storage_provider, upload_status, created_at, updated_at`

func (r *AssetRepository) UpsertCompleted(ctx context.Context, a *model.Asset) error {
	logger.Infof(ctx, "upserting database record for asset %q, at status %q...", a.ObjectKey, a.UploadStatus)

	const query = `
      INSERT INTO assets
        (id, object_key, category, entity_id, filename, content_type, file_size, etag, storage_provider, upload_status)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
      ON DUPLICATE KEY UPDATE
        category         = VALUES(category),
        entity_id        = VALUES(entity_id),
        filename         = COALESCE(VALUES(filename), filename),
        content_type     = COALESCE(VALUES(content_type), content_type),
        file_size        = COALESCE(VALUES(file_size), file_size),
        etag             = COALESCE(VALUES(etag), etag),
        storage_provider = VALUES(storage_provider),
        upload_status    = VALUES(upload_status)
    `
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.ObjectKey, a.Category, a.EntityID,
		a.Filename, a.ContentType, a.FileSize, a.ETag,
		a.StorageProvider, a.UploadStatus,
	)
	return err
}

func (r *AssetRepository) GetByObjectKey(ctx context.Context, objectKey string) (*model.Asset, error) {
	logger.Infof(ctx, "fetching asset %q from the database...", objectKey)

	query := `SELECT ` + assetColumns + ` FROM assets WHERE object_key = ?`
	a, err := scanAsset(r.db.QueryRowContext(ctx, query, objectKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, asset.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AssetRepository) List(ctx context.Context, filter model.AssetFilter) ([]*model.Asset, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.EntityID != "" {
		clauses = append(clauses, "entity_id = ?")
		args = append(args, filter.EntityID)
	}

	query := `SELECT ` + assetColumns + ` FROM assets`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AssetRepository) UpdateStatus(ctx context.Context, objectKey string, status model.UploadStatus) error {
	logger.Infof(ctx, "updating asset %q to status %q...", objectKey, status)

	const query = `UPDATE assets SET upload_status = ? WHERE object_key = ?`
	res, err := r.db.ExecContext(ctx, query, status, objectKey)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return asset.ErrAssetNotFound
	}
	return nil
}

func (r *AssetRepository) ListPendingBefore(ctx context.Context, before time.Time) ([]string, error) {
	const query = `
      SELECT object_key FROM assets
      WHERE upload_status = ? AND created_at < ?
      ORDER BY created_at
    `
	rows, err := r.db.QueryContext(ctx, query, model.UploadStatusPending, before)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*model.Asset, error) {
	var a model.Asset
	if err := row.Scan(
		&a.ID, &a.ObjectKey, &a.Category, &a.EntityID,
		&a.Filename, &a.ContentType, &a.FileSize, &a.ETag,
		&a.StorageProvider, &a.UploadStatus,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
