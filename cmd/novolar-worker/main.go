// novolar-worker tails the expense event queue and writes an activity
// log, useful for auditing changes made through the UI.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/patrickhernande1993/novo-lar/internal/config"
	"github.com/patrickhernande1993/novo-lar/internal/events"
	"github.com/patrickhernande1993/novo-lar/internal/log"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: "novolar-worker",
	})
	log.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.EventsEnabled() {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	consumer, err := events.NewConsumer(cfg.AMQPURL, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer func() { _ = consumer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	activity := logger.WithComponent("activity")
	err = consumer.Consume(ctx, func(ctx context.Context, event *events.ExpenseEvent) error {
		activity.InfoContext(ctx, "expense activity",
			"type", event.Type,
			"expense_id", event.ExpenseID,
			"occurred_at", event.Timestamp,
		)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped gracefully")
}
