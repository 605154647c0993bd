package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/skullking/config"
	"github.com/Dosada05/skullking/db"
	"github.com/Dosada05/skullking/handlers"
	"github.com/Dosada05/skullking/ledger"
	"github.com/Dosada05/skullking/metrics"
	"github.com/Dosada05/skullking/repositories"
	api "github.com/Dosada05/skullking/routes"
	"github.com/Dosada05/skullking/services"
	"github.com/Dosada05/skullking/storage"
)

const shutdownTimeout = 15 * time.Second

type ServeCmd struct {
	Migrate bool `help:"Apply the postgres schema before serving"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageBackend),
		slog.Bool("implicit_zero_bids", cfg.ImplicitZeroBids),
		slog.Bool("archive", cfg.Archive.Enabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gameRepo, statsRepo, closeStore, err := c.openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var archive services.ArchiveService
	if cfg.Archive.Enabled() {
		uploader, err := storage.NewS3Uploader(ctx, storage.S3UploaderConfig{
			Endpoint:        cfg.Archive.Endpoint,
			Region:          cfg.Archive.Region,
			AccessKeyID:     cfg.Archive.AccessKeyID,
			SecretAccessKey: cfg.Archive.SecretAccessKey,
			BucketName:      cfg.Archive.Bucket,
			PublicBaseURL:   cfg.Archive.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize archive uploader: %w", err)
		}
		archive = services.NewArchiveService(uploader)
		logger.Info("archive uploader initialized", slog.String("bucket", cfg.Archive.Bucket))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	clock := quartz.NewReal()
	statsService := services.NewStatsService(statsRepo, clock, m, logger)
	gameService := services.NewGameService(
		gameRepo,
		statsService,
		archive,
		ledger.Ledger{ImplicitZeroBids: cfg.ImplicitZeroBids},
		clock,
		m,
		logger,
	)
	logger.Info("services initialized")

	sched, err := services.StartFinalizeScheduler(ctx, gameService, cfg.Archive.SweepInterval, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		handlers.NewGameHandler(gameService),
		handlers.NewUserHandler(statsService),
		api.Options{AllowedOrigins: cfg.AllowedOrigins, Logger: logger, Gatherer: reg},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application exited")
	return nil
}

func (c *ServeCmd) openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.GameRepository, repositories.UserStatsRepository, func(), error) {
	if cfg.StorageBackend != config.StoragePostgres {
		logger.Info("using in-memory store")
		return repositories.NewMemoryGameRepository(), repositories.NewMemoryUserStatsRepository(), func() {}, nil
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("database connection established")

	if c.Migrate {
		if err := db.Migrate(ctx, dbConn); err != nil {
			closeDB(dbConn, logger)
			return nil, nil, nil, err
		}
		logger.Info("database schema applied")
	}

	return repositories.NewPostgresGameRepository(dbConn),
		repositories.NewPostgresUserStatsRepository(dbConn),
		func() { closeDB(dbConn, logger) },
		nil
}

func closeDB(dbConn *sql.DB, logger *slog.Logger) {
	if err := dbConn.Close(); err != nil {
		logger.Error("failed to close database connection", slog.Any("error", err))
		return
	}
	logger.Info("database connection closed")
}
