package worker

import (
	"context"
	"time"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
	"github.com/inkstudio/booking-api/pkg/logger"
	"github.com/inkstudio/booking-api/pkg/messaging"
	"github.com/inkstudio/booking-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize     int
	PollInterval  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// OutboxProcessor drains pending outbox events and publishes them to the
// broker, one channel per event type.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		panic("BatchSize must be greater than 0")
	}
	if config.PollInterval <= 0 {
		panic("PollInterval must be greater than 0")
	}
	if config.RetryAttempts <= 0 {
		panic("RetryAttempts must be greater than 0")
	}
	if config.RetryDelay <= 0 {
		panic("RetryDelay must be greater than 0")
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("Starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error(err, "Failed to process events")
			}
		}
	}
}

func (p *OutboxProcessor) processEvents(ctx context.Context) error {
	events, err := p.repo.GetPending(ctx, p.config.BatchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		start := time.Now()
		if err := p.publishWithRetry(ctx, event); err != nil {
			p.metrics.OutboxEventsFailed.Inc()
			p.logger.Error(err, "Failed to publish event", "event_id", event.ID.String())
			if markErr := p.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				p.logger.Error(markErr, "Failed to mark event failed", "event_id", event.ID.String())
			}
			continue
		}

		if err := p.repo.MarkProcessed(ctx, event.ID); err != nil {
			p.logger.Error(err, "Failed to mark event processed", "event_id", event.ID.String())
			continue
		}
		p.metrics.OutboxEventsProcessed.Inc()
		p.metrics.OutboxProcessingLatency.Observe(time.Since(start).Seconds())
	}
	return nil
}

func (p *OutboxProcessor) publishWithRetry(ctx context.Context, event *model.OutboxEvent) error {
	message := messaging.Message{
		Type:    event.EventType,
		Payload: event.Payload,
	}

	var err error
	for attempt := 0; attempt < p.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			p.metrics.OutboxRetries.WithLabelValues(event.EventType).Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.config.RetryDelay):
			}
		}
		if err = p.broker.Publish(ctx, event.EventType, message); err == nil {
			return nil
		}
	}
	return err
}
