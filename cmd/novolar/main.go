package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/patrickhernande1993/novo-lar/internal/analyzer"
	"github.com/patrickhernande1993/novo-lar/internal/analyzer/gemini"
	"github.com/patrickhernande1993/novo-lar/internal/backend"
	"github.com/patrickhernande1993/novo-lar/internal/config"
	"github.com/patrickhernande1993/novo-lar/internal/events"
	apphttp "github.com/patrickhernande1993/novo-lar/internal/http"
	"github.com/patrickhernande1993/novo-lar/internal/log"
	"github.com/patrickhernande1993/novo-lar/internal/services"
)

func main() {
	// Local development convenience; errors just mean there is no .env.
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: "novolar",
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	docs, err := backend.NewFactory(logger).Create(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize document store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	var publisher *events.Publisher
	if cfg.EventsEnabled() {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("failed to initialize event publisher, continuing without events", "error", err)
		} else {
			logger.Info("initialized event publisher",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	var receiptAnalyzer analyzer.Analyzer
	if cfg.AnalysisEnabled() {
		client, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("failed to initialize receipt analyzer, continuing without analysis", "error", err)
		} else {
			receiptAnalyzer = client
			logger.Info("initialized receipt analyzer", "model", cfg.GeminiModel)
		}
	}

	expenses := services.NewExpenseService(docs, publisher)
	expenses.Load(ctx)
	drafts := services.NewDraftService(expenses, receiptAnalyzer, cfg.AnalyzeTimeout)

	srv := apphttp.NewServer(":"+cfg.Port, expenses, drafts, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
		if err := expenses.Close(); err != nil {
			logger.Error("expense service close error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
