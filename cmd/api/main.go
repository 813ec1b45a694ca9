package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NumaanisCoder/LI-backend/internal/api/handler"
	"github.com/NumaanisCoder/LI-backend/internal/api/middleware"
	"github.com/NumaanisCoder/LI-backend/internal/config"
	"github.com/NumaanisCoder/LI-backend/internal/domain/repository"
	"github.com/NumaanisCoder/LI-backend/internal/infrastructure/storage"
	"github.com/NumaanisCoder/LI-backend/internal/usecase"
)

const storageInitTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	initCtx, cancelInit := context.WithTimeout(context.Background(), storageInitTimeout)
	store, bucket, err := newStorage(initCtx, cfg.Storage)
	cancelInit()
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("storage ready",
		slog.String("provider", cfg.Storage.Provider),
		slog.String("bucket", bucket),
	)

	svc := usecase.NewAssetService(store, usecase.AssetServiceConfig{
		SignedURLExpiry: cfg.Upload.SignedURLTTL,
		ListConcurrency: cfg.Upload.ListConcurrency,
	})

	r := setupRouter(cfg, svc, store, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// bucketStorage is an ObjectStorage bound to a single bucket.
type bucketStorage interface {
	repository.ObjectStorage
	Bucket() string
}

var (
	_ bucketStorage = (*storage.S3Client)(nil)
	_ bucketStorage = (*storage.MinIOClient)(nil)
)

// newStorage builds the configured provider and wraps it with metrics.
// It also returns the bucket the provider verified at construction.
func newStorage(ctx context.Context, cfg config.StorageConfig) (repository.ObjectStorage, string, error) {
	var (
		store bucketStorage
		err   error
	)

	switch cfg.Provider {
	case config.ProviderMinIO:
		store, err = storage.NewMinIOClient(ctx, storage.MinIOConfig{
			Endpoint:       cfg.MinIOEndpoint,
			PublicEndpoint: cfg.MinIOPublicEndpoint,
			AccessKey:      cfg.AccessKey,
			SecretKey:      cfg.SecretKey,
			Bucket:         cfg.Bucket,
			UseSSL:         cfg.MinIOUseSSL,
		})
	case config.ProviderS3:
		store, err = storage.NewS3Client(ctx, storage.S3Config{
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			Endpoint:  cfg.Endpoint,
		})
	default:
		return nil, "", fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, "", err
	}

	return storage.Instrument(store), store.Bucket(), nil
}

func setupRouter(cfg *config.Config, svc usecase.AssetService, pinger handler.Pinger, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	videoHandler := handler.NewVideoHandler(svc, cfg.Upload.VideoMaxBytes, logger)
	audioHandler := handler.NewAudioHandler(svc, cfg.Upload.AudioMaxBytes, logger)

	r.Get("/", handler.Liveness)
	r.Get("/health", handler.Health(pinger, logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/upload", videoHandler.Upload)
	r.Get("/videos", videoHandler.List)

	r.Route("/api/audio", func(r chi.Router) {
		r.Post("/", audioHandler.Upload)
		r.Get("/", audioHandler.List)
		r.Get("/{id}", audioHandler.Get)
		r.Delete("/{id}", audioHandler.Delete)
	})

	return r
}
