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

func (r *artistRepository) Create(ctx context.Context, artist *model.Artist) error {
	query := `
		INSERT INTO artists (id, name, specialty, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	artist.ID = uuid.New()
	artist.CreatedAt = time.Now()
	artist.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		artist.ID,
		artist.Name,
		artist.Specialty,
		artist.Active,
		artist.CreatedAt,
		artist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}
	return nil
}

func (r *artistRepository) Get(ctx context.Context, id uuid.UUID) (*model.Artist, error) {
	query := `
		SELECT id, name, specialty, active, created_at, updated_at
		FROM artists
		WHERE id = $1
	`
	var artist model.Artist
	err := r.db.GetContext(ctx, &artist, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}
	return &artist, nil
}

func (r *artistRepository) List(ctx context.Context) ([]*model.Artist, error) {
	query := `
		SELECT id, name, specialty, active, created_at, updated_at
		FROM artists
		ORDER BY name
	`
	var artists []*model.Artist
	if err := r.db.SelectContext(ctx, &artists, query); err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

func (r *artistRepository) Update(ctx context.Context, artist *model.Artist) error {
	query := `
		UPDATE artists
		SET name = $1, specialty = $2, active = $3, updated_at = $4
		WHERE id = $5
	`
	artist.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		artist.Name,
		artist.Specialty,
		artist.Active,
		artist.UpdatedAt,
		artist.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
