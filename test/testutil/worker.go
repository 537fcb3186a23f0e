package testutil

import (
	"context"
	"database/sql"

	"github.com/fhuszti/lsl-go/internal/cache"
	workerHandler "github.com/fhuszti/lsl-go/internal/handler/worker"
	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
	"github.com/fhuszti/lsl-go/internal/repository/mariadb"
	"github.com/fhuszti/lsl-go/internal/task"
	assetSvc "github.com/fhuszti/lsl-go/internal/usecase/asset"
	"github.com/hibiken/asynq"
)

// StartWorker starts an asynq worker processing verification tasks.
// It returns a function to gracefully shut down the worker.
func StartWorker(db *sql.DB, strg port.Storage, redisAddr string) func() {
	repo := mariadb.NewAssetRepository(db)
	verifySvc := assetSvc.NewAssetVerifier(repo, strg, cache.NewCache(redisAddr, ""))

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeVerifyAsset, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseVerifyAssetPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.VerifyAssetHandler(ctx, p, verifySvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 2})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
