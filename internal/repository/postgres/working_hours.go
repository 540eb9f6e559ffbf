package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
)

func (r *workingHoursRepository) Replace(ctx context.Context, artistID uuid.UUID, rules []*model.WorkingHourRule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM working_hours WHERE artist_id = $1`, artistID); err != nil {
		return fmt.Errorf("failed to delete working hours: %w", err)
	}

	query := `
		INSERT INTO working_hours (id, artist_id, day_of_week, start_time, end_time, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	for _, rule := range rules {
		rule.ID = uuid.New()
		rule.ArtistID = artistID
		rule.CreatedAt = now
		rule.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, query,
			rule.ID,
			rule.ArtistID,
			rule.DayOfWeek,
			rule.StartTime,
			rule.EndTime,
			rule.IsAvailable,
			rule.CreatedAt,
			rule.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert working hour rule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit working hours: %w", err)
	}
	return nil
}

func (r *workingHoursRepository) GetForDay(ctx context.Context, artistID uuid.UUID, dayOfWeek int) (*model.WorkingHourRule, error) {
	query := `
		SELECT id, artist_id, day_of_week, start_time, end_time, is_available, created_at, updated_at
		FROM working_hours
		WHERE artist_id = $1 AND day_of_week = $2
	`
	var rule model.WorkingHourRule
	err := r.db.GetContext(ctx, &rule, query, artistID, dayOfWeek)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get working hour rule: %w", err)
	}
	return &rule, nil
}

func (r *workingHoursRepository) ListForArtist(ctx context.Context, artistID uuid.UUID) ([]*model.WorkingHourRule, error) {
	query := `
		SELECT id, artist_id, day_of_week, start_time, end_time, is_available, created_at, updated_at
		FROM working_hours
		WHERE artist_id = $1
		ORDER BY day_of_week
	`
	var rules []*model.WorkingHourRule
	if err := r.db.SelectContext(ctx, &rules, query, artistID); err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	return rules, nil
}
