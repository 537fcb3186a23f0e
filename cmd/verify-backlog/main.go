package main

import (
	"context"
	"os"

	"github.com/fhuszti/lsl-go/internal/config"
	"github.com/fhuszti/lsl-go/internal/db"
	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/repository/mariadb"
	"github.com/fhuszti/lsl-go/internal/task"
	assetSvc "github.com/fhuszti/lsl-go/internal/usecase/asset"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "❌  Redis not configured: this command requires a running Redis instance")
		os.Exit(1)
	}

	logger.Init()

	logger.Info(ctx, "initialising database...")
	database, err := db.New(ctx, cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
	defer func() {
		if err := dispatcher.Close(); err != nil {
			logger.Warnf(ctx, "dispatcher close error: %v", err)
		}
	}()

	verifier := assetSvc.NewBacklogVerifier(mariadb.NewAssetRepository(database.DB), dispatcher)
	if err := verifier.VerifyBacklog(ctx); err != nil {
		logger.Errorf(ctx, "❌  Backlog verification failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Backlog verification enqueued")
}
