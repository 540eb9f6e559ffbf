package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
)

func (r *OutboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = uuid.New()
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	r.events[event.ID] = *event
	r.order = append(r.order, event.ID)
	return nil
}

func (r *OutboxRepository) GetPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []*model.OutboxEvent
	for _, id := range r.order {
		if len(events) == limit {
			break
		}
		if e, ok := r.events[id]; ok && e.Status == model.OutboxStatusPending {
			event := e
			events = append(events, &event)
		}
	}
	return events, nil
}

func (r *OutboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	event.Status = model.OutboxStatusProcessed
	event.ProcessedAt = &now
	event.UpdatedAt = now
	r.events[id] = event
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	event.Status = model.OutboxStatusFailed
	event.ErrorMessage = &errMsg
	event.RetryCount++
	event.UpdatedAt = time.Now()
	r.events[id] = event
	return nil
}
