// Command dispatcher runs the outbox processor as a standalone worker.
// It can run alongside the server's in-process dispatcher: records are
// claimed through a conditional status transition, so concurrent
// instances never deliver the same record twice.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	eventrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/event"
	outboxrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/outbox"
	"github.com/praxisworks/lawdesk-backend/internal/app"
	"github.com/praxisworks/lawdesk-backend/internal/config"
	"github.com/praxisworks/lawdesk-backend/internal/dispatch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	processor := dispatch.NewProcessor(
		logger,
		outboxrepo.New(pool),
		eventrepo.New(pool),
		dispatch.NewLogNotifier(logger),
		cfg.Dispatch.BatchSize,
		cfg.Dispatch.Interval,
	)

	logger.Info("dispatcher started",
		slog.Int("batch_size", cfg.Dispatch.BatchSize),
		slog.Duration("interval", cfg.Dispatch.Interval),
	)

	processor.Run(ctx)

	logger.Info("dispatcher stopped")
}
