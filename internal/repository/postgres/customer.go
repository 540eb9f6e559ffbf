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

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, email, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	customer.ID = uuid.New()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.Notes,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, name, phone, email, notes, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}
