// Package event records domain events in the outbox table. The worker binary
// drains the outbox and publishes to the message broker, so API writes never
// block on Redis.
package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
)

type Service struct {
	repo repository.OutboxRepository
}

func NewService(repo repository.OutboxRepository) *Service {
	return &Service{repo: repo}
}

// Record queues an event for publication. Failures are reported to the caller
// but are not part of the write's success; callers log and continue.
func (s *Service) Record(ctx context.Context, eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return s.repo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	})
}
