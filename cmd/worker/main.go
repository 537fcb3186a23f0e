package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fhuszti/lsl-go/internal/cache"
	"github.com/fhuszti/lsl-go/internal/config"
	"github.com/fhuszti/lsl-go/internal/db"
	workerHandler "github.com/fhuszti/lsl-go/internal/handler/worker"
	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
	"github.com/fhuszti/lsl-go/internal/repository/mariadb"
	"github.com/fhuszti/lsl-go/internal/storage"
	"github.com/fhuszti/lsl-go/internal/task"
	assetSvc "github.com/fhuszti/lsl-go/internal/usecase/asset"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	strg := initStorage(ctx, cfg)

	repo := mariadb.NewAssetRepository(database.DB)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	verifySvc := assetSvc.NewAssetVerifier(repo, strg, ca)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeVerifyAsset, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseVerifyAssetPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.VerifyAssetHandler(ctx, p, verifySvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(ctx, cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise %s storage: %v", cfg.StorageProvider, err)
		os.Exit(1)
	}
	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// stop accepting new tasks and wait for in-flight ones
	srv.Shutdown()

	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
