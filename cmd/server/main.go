package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/approval"
	"github.com/Clark-Hu/hostel-service/internal/catalog"
	"github.com/Clark-Hu/hostel-service/internal/config"
	"github.com/Clark-Hu/hostel-service/internal/domain"
	httpserver "github.com/Clark-Hu/hostel-service/internal/http"
	"github.com/Clark-Hu/hostel-service/internal/identity"
	"github.com/Clark-Hu/hostel-service/internal/imagestore"
	"github.com/Clark-Hu/hostel-service/internal/logging"
	"github.com/Clark-Hu/hostel-service/internal/ranking"
	"github.com/Clark-Hu/hostel-service/internal/rating"
	"github.com/Clark-Hu/hostel-service/internal/reply"
	"github.com/Clark-Hu/hostel-service/internal/repository"
	"github.com/Clark-Hu/hostel-service/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.New(dbCtx, cfg.DBURL, store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Registerer:             prometheus.DefaultRegisterer,
		Logger:                 logger,
	})
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.DBMigrationsDir != "" {
		if err := st.Migrate(dbCtx, cfg.DBMigrationsDir); err != nil {
			return err
		}
	}

	users, err := newIdentityClient(cfg, logger)
	if err != nil {
		return err
	}
	blobs, err := newImageStore(cfg, logger)
	if err != nil {
		return err
	}

	repo := repository.New(st)
	ratings := rating.NewService(repo.Ratings, repo.Hostels, users, logger)
	svc := httpserver.Services{
		Ratings: ratings,
		Ranking: ranking.NewEngine(repo.Ratings, repo.Hostels, ranking.Options{
			Confidence: cfg.RankingConfidence,
			Workers:    cfg.RankingWorkers,
			Logger:     logger,
		}),
		Hostels:        catalog.NewHostels(repo.Hostels, repo.Categories, users, logger),
		Categories:     catalog.NewCategories(repo.Categories, users, logger),
		Gallery:        catalog.NewGallery(repo.Images, repo.Hostels, blobs, cfg.MaxImagesPerHostel, logger),
		Replies:        reply.NewService(repo.Replies, repo.Ratings, users, logger),
		HostelReview:   approval.New[domain.Hostel]("Hostel", repo.Hostels, logger),
		CategoryReview: approval.New[domain.Category]("Category", repo.Categories, logger),
	}

	server := httpserver.New(cfg, st, svc, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	var serveErr error
	select {
	case serveErr = <-serverErrCh:
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("graceful shutdown error", zap.Error(err))
	}
	return serveErr
}

func newIdentityClient(cfg config.Config, logger *zap.Logger) (identity.Client, error) {
	if cfg.IdentityMode == config.IdentityModeStatic {
		logger.Info("using static identity oracle", zap.Int64s("users", cfg.IdentityStaticUsers))
		return identity.NewStatic(cfg.IdentityStaticUsers...), nil
	}
	return identity.NewHTTPClient(cfg.IdentityURL, time.Duration(cfg.IdentityTimeoutSecs)*time.Second, logger)
}

func newImageStore(cfg config.Config, logger *zap.Logger) (imagestore.Store, error) {
	if !cfg.ImagesEnabled() {
		logger.Warn("CLOUDINARY_URL not set; image uploads disabled")
		return imagestore.Disabled{}, nil
	}
	return imagestore.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryFolder, logger)
}
