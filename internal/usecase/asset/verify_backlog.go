package asset

import (
	"context"
	"time"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
)

type backlogVerifierSrv struct {
	repo  port.AssetRepository
	tasks port.TaskDispatcher
	now   func() time.Time
}

// compile-time check: *backlogVerifierSrv must satisfy port.BacklogVerifier
var _ port.BacklogVerifier = (*backlogVerifierSrv)(nil)

// NewBacklogVerifier constructs a BacklogVerifier implementation.
func NewBacklogVerifier(repo port.AssetRepository, tasks port.TaskDispatcher) port.BacklogVerifier {
	return &backlogVerifierSrv{repo: repo, tasks: tasks, now: time.Now}
}

// VerifyBacklog looks for assets still pending after BacklogAge and enqueues
// verification tasks for them.
func (s *backlogVerifierSrv) VerifyBacklog(ctx context.Context) error {
	keys, err := s.repo.ListPendingBefore(ctx, s.now().Add(-BacklogAge))
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		logger.Info(ctx, "no pending assets found to verify")
	}

	for _, key := range keys {
		logger.Infof(ctx, "starting verification for asset %q", key)
		if err := s.tasks.EnqueueVerifyAsset(ctx, key); err != nil {
			logger.Warnf(ctx, "failed to enqueue verify task for asset %q: %v", key, err)
		}
	}
	return nil
}
