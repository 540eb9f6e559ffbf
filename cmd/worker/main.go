package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkstudio/booking-api/internal/config"
	"github.com/inkstudio/booking-api/internal/repository/postgres"
	"github.com/inkstudio/booking-api/pkg/logger"
	"github.com/inkstudio/booking-api/pkg/messaging/redis"
	"github.com/inkstudio/booking-api/pkg/metrics"
	"github.com/inkstudio/booking-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	db, err := postgres.NewDB(cfg.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:        cfg.RedisURL,
		MaxRetries: 3,
		PoolSize:   10,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	l := logger.NewLogger(nil)
	m := metrics.NewMetrics("booking_worker", "outbox")

	processor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.BatchSize,
			PollInterval:  cfg.PollInterval,
			RetryAttempts: cfg.RetryAttempts,
			RetryDelay:    cfg.RetryDelay,
		},
		l,
		m,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Start(ctx)

	// Expose worker metrics
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error().Err(err).Msg("metrics server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()
}
