package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/lsl-go/internal/cache"
	"github.com/fhuszti/lsl-go/internal/config"
	"github.com/fhuszti/lsl-go/internal/db"
	"github.com/fhuszti/lsl-go/internal/handler/api"
	"github.com/fhuszti/lsl-go/internal/logger"
	cMiddleware "github.com/fhuszti/lsl-go/internal/middleware"
	"github.com/fhuszti/lsl-go/internal/port"
	"github.com/fhuszti/lsl-go/internal/renderer"
	"github.com/fhuszti/lsl-go/internal/repository/mariadb"
	"github.com/fhuszti/lsl-go/internal/storage"
	"github.com/fhuszti/lsl-go/internal/task"
	assetSvc "github.com/fhuszti/lsl-go/internal/usecase/asset"
	msuuid "github.com/fhuszti/lsl-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.CORSAllowedOrigins)

	strg := initStorage(ctx, cfg)

	assetRepo := mariadb.NewAssetRepository(database.DB)
	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		d := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		defer func() {
			if err := d.Close(); err != nil {
				logger.Warnf(ctx, "dispatcher close error: %v", err)
			}
		}()
		dispatcher = d
		logger.Info(ctx, "✅  Redis cache and verification queue enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching and verification are disabled")
	}

	r.Get("/health", api.HealthHandler())

	issuerSvc := assetSvc.NewUploadURLIssuer(strg, cfg.AssetBaseURL, cfg.UploadURLTTL, msuuid.NewUUID)
	r.Post("/assets/upload-url", api.UploadURLHandler(issuerSvc))

	completerSvc := assetSvc.NewUploadCompleter(assetRepo, strg, ca, dispatcher, cfg.AssetBaseURL, msuuid.NewUUID)
	r.Post("/assets/complete-upload", api.CompleteUploadHandler(completerSvc))

	listerSvc := assetSvc.NewAssetLister(assetRepo, cfg.AssetBaseURL)
	rendererSvc := renderer.NewHTTPRenderer(ca)
	r.Get("/assets", api.ListAssetsHandler(rendererSvc, listerSvc))

	listenRouter(ctx, r, cfg, database)
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

func initRouter(ctx context.Context, allowedOrigins []string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cMiddleware.WithCORS(allowedOrigins))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise %s storage: %v", cfg.StorageProvider, err)
		os.Exit(1)
	}
	logger.Infof(ctx, "✅  Using %s storage", strg.Name())

	return strg
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
