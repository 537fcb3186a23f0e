package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
	"github.com/fhuszti/lsl-go/internal/task"
	"github.com/fhuszti/lsl-go/internal/usecase/asset"
	"github.com/hibiken/asynq"
)

// VerifyAssetHandler handles an asset:verify task by delegating to the
// AssetVerifier. Tasks that can never succeed are not retried.
func VerifyAssetHandler(ctx context.Context, p task.VerifyAssetPayload, svc port.AssetVerifier) error {
	key := strings.TrimSpace(p.ObjectKey)
	if key == "" {
		logger.Error(ctx, "❌  Verify task without object key")
		return fmt.Errorf("empty object key: %w", asynq.SkipRetry)
	}

	if err := svc.VerifyAsset(ctx, key); err != nil {
		logger.Errorf(ctx, "❌  Failed to verify asset %q: %v", key, err)
		if errors.Is(err, asset.ErrAssetNotFound) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	logger.Infof(ctx, "✅  Successfully verified asset %q", key)
	return nil
}
