// Command worker relays outbox events and expires overdue quotes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/cmd"
	"backoffice/config"
	"backoffice/infrastructure/persistence/rdb"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Worker startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := cmd.OpenDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	worker, err := rdb.NewOutboxWorker(
		rdb.NewOutboxRepository(db),
		&rdb.LoggingOutboxPublisher{},
		cfg.Worker.PollInterval,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxRetries,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox worker: %w", err)
	}
	services := cmd.NewServices(cfg, db)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Worker started",
		zap.Duration("poll_interval", cfg.Worker.PollInterval),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("expiry_interval", cfg.Worker.ExpiryInterval),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(ctx)
	})
	g.Go(func() error {
		return expireQuotes(ctx, cfg, services)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker exited with error: %w", err)
	}

	logger.Info("Worker stopped")
	return nil
}

// expireQuotes sweeps overdue quotes once at startup and then on every
// tick. A failed sweep is logged and retried on the next tick.
func expireQuotes(ctx context.Context, cfg *config.Config, services *cmd.Services) error {
	sweep := func() {
		if _, err := services.Quotes.ExpireOverdue(ctx, time.Now(), cfg.Worker.ExpiryBatchSize); err != nil {
			logger.Error("Quote expiry sweep failed", zap.Error(err))
		}
	}

	sweep()
	ticker := time.NewTicker(cfg.Worker.ExpiryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sweep()
		}
	}
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
