package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	mongodb "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	infraoutbox "staybook/internal/infra/outbox"
	"staybook/internal/infra/storage/memory"
	redisstore "staybook/internal/infra/storage/redis"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "dotenv:", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := obs.NewMetrics()
	infra, err := connectAdapters(ctx, cfg, logger, metrics)
	if err != nil {
		logger.Error("adapters unavailable", "error", err)
		os.Exit(1)
	}
	if err := seedListings(ctx, cfg, infra, logger); err != nil {
		logger.Error("listing fixtures import failed", "error", err, "path", cfg.ListingsFixtures)
		os.Exit(1)
	}

	app := buildApplication(cfg, logger, metrics, infra)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger, Metrics: metrics}, obs.HealthHandlers{Checks: infra.checks}, app.handlers)

	var wg sync.WaitGroup
	for _, run := range infra.workers {
		run := run
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("background worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "availability_mode", cfg.AvailabilityMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		stop()
	}
	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, closeFn := range infra.closers {
		if err := closeFn(closeCtx); err != nil {
			logger.Warn("adapter close failed", "error", err)
		}
	}
	logger.Info("HTTP server stopped")
}

// connectAdapters starts from the in-memory adapters and swaps in Mongo, Redis and
// Kafka for whichever of them is configured.
func connectAdapters(ctx context.Context, cfg config.Config, logger *slog.Logger, metrics *obs.Metrics) (*adapters, error) {
	infra := memoryAdapters(cfg, logger, metrics)

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		infra.closers = append(infra.closers, client.Close)
		infra.checks["mongo"] = client.Ping
		infra.listings = mongodb.NewListingRepository(client.DB)
		infra.calendars = mongodb.NewCalendarRepository(client.DB, cfg.Timezone)
		idem, err := mongodb.NewIdempotencyStore(ctx, client.DB, idempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("mongo idempotency store: %w", err)
		}
		infra.idempotency = idem
		logger.Info("mongo adapters enabled", "db", cfg.MongoDB)

		if cfg.OutboxEnabled() {
			store, err := infraoutbox.NewStore(ctx, client.DB)
			if err != nil {
				return nil, fmt.Errorf("mongo outbox: %w", err)
			}
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, "staybook")
			if err != nil {
				return nil, fmt.Errorf("kafka producer: %w", err)
			}
			infra.closers = append(infra.closers, func(context.Context) error { return producer.Close() })
			infra.outbox = store
			worker := &infraoutbox.Worker{
				Queue:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
				Logger:      logger,
				Observer:    metrics,
			}
			infra.workers = append(infra.workers, worker.Run)
			logger.Info("outbox relay enabled", "brokers", cfg.KafkaBrokers)
		}
	}

	if cfg.RedisAddr != "" {
		client := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		store := redisstore.NewSessionStore(client, cfg.SessionTTL, cfg.Timezone, metrics)
		infra.closers = append(infra.closers, func(context.Context) error { return client.Close() })
		infra.checks["redis"] = store.Ping
		infra.sessions = store
		logger.Info("redis session store enabled", "addr", cfg.RedisAddr)
	}

	if store, ok := infra.sessions.(*memory.SessionStore); ok {
		infra.workers = append(infra.workers, func(ctx context.Context) error {
			store.Janitor(ctx, time.Minute)
			return nil
		})
	}
	return infra, nil
}
