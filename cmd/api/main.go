package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/api"
	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/clients/kafka_client"
	"github.com/spacesedan/sentiscope/internal/logging"
	"github.com/spacesedan/sentiscope/internal/monitoring"
	"github.com/spacesedan/sentiscope/internal/processing"
	"github.com/spacesedan/sentiscope/internal/query"
	"github.com/spacesedan/sentiscope/internal/sentiment"
)

const KAFKA_INIT_ATTEMPTS = 3

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.App.LogLevel)
	monitoring.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scorer, err := sentiment.NewFromConfig(cfg)
	if err != nil {
		slog.Error("[Main] Failed to build sentiment scorer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Valkey.Enabled() {
		valkeyClient, err := clients.NewValkeyClient(cfg.Valkey)
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, scoring without cache", slog.String("error", err.Error()))
		} else {
			defer valkeyClient.Close()
			scorer = sentiment.NewCachedScorer(scorer, valkeyClient, cfg.Sentiment.Backend, cfg.Sentiment.CacheTTL)
		}
	}

	var publisher processing.Publisher
	if cfg.Kafka.Enabled() {
		if producer := initProducer(cfg.Kafka); producer != nil {
			defer producer.Close()
			publisher = producer
		}
	}

	var scorerHealthy *atomic.Bool
	if checker, ok := scorer.(sentiment.HealthChecker); ok && cfg.Sentiment.Backend == config.SentimentBackendHuggingFace {
		scorerHealthy = &atomic.Bool{}
		scorerHealthy.Store(true)
		go monitoring.MonitorScorerHealth(ctx, checker, monitoring.HEALTHCHECK_TIMER, scorerHealthy)
	}

	analyzer := processing.NewAnalyzer(clients.NewTwitterClient(cfg.Twitter), scorer, processing.AnalyzerOptions{
		Builder:       query.NewBuilder(cfg.Search.Count, cfg.Search.TweetMode),
		SearchTimeout: cfg.Search.Timeout,
		CleanText:     cfg.Sentiment.CleanText,
		Workers:       cfg.Sentiment.Workers,
		Backend:       cfg.Sentiment.Backend,
		Publisher:     publisher,
	})

	server := api.NewServer(cfg.App, api.NewHandler(analyzer, scorerHealthy))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	slog.Info("[Main] Sentiscope API started",
		slog.String("env", cfg.App.Env),
		slog.String("addr", server.Addr()),
		slog.String("backend", cfg.Sentiment.Backend))

	select {
	case <-ctx.Done():
		slog.Info("[Main] Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			slog.Error("[Main] HTTP server stopped", slog.String("error", err.Error()))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}
	slog.Info("[Main] Sentiscope API stopped")
}

// initProducer retries a few times and gives up without failing startup;
// analysis events are optional.
func initProducer(cfg config.KafkaConfig) *kafka_client.Producer {
	for attempt := 1; attempt <= KAFKA_INIT_ATTEMPTS; attempt++ {
		producer, err := kafka_client.NewProducer(cfg)
		if err == nil {
			return producer
		}
		slog.Warn("[Main] Kafka init failed, retrying...",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
	slog.Error("[Main] Kafka unavailable, analysis events disabled")
	return nil
}
