package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
)

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (id, event_type, payload, status, retry_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	event.ID = uuid.New()
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.Payload,
		event.Status,
		event.RetryCount,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepository) GetPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	query := `
		SELECT id, event_type, payload, status, error_message, retry_count, created_at, processed_at, updated_at
		FROM outbox_events
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
	`
	var events []*model.OutboxEvent
	if err := r.db.SelectContext(ctx, &events, query, model.OutboxStatusPending, limit); err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE outbox_events
		SET status = $1, processed_at = $2, updated_at = $2
		WHERE id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, model.OutboxStatusProcessed, time.Now(), id); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	query := `
		UPDATE outbox_events
		SET status = $1, error_message = $2, retry_count = retry_count + 1, updated_at = $3
		WHERE id = $4
	`
	if _, err := r.db.ExecContext(ctx, query, model.OutboxStatusFailed, errMsg, time.Now(), id); err != nil {
		return fmt.Errorf("failed to mark event failed: %w", err)
	}
	return nil
}
