package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/Dosada05/skullking/config"
	"github.com/Dosada05/skullking/db"
)

type MigrateCmd struct {
	Timeout time.Duration `default:"30s" help:"Give up after this long"`
}

func (c *MigrateCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is not set")
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()
	if err := db.Migrate(ctx, dbConn); err != nil {
		return err
	}
	logger.Info("database schema applied")
	return nil
}

func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
