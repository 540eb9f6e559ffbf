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

const bookingColumns = `
	id, ref_no, customer_id, artist_id, service_type, date,
	start_time, end_time, duration_minutes, status, price, currency,
	deposit_amount, deposit_received, notes, created_at, updated_at
`

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.RefNo,
		booking.CustomerID,
		booking.ArtistID,
		booking.ServiceType,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.DurationMinutes,
		booking.Status,
		booking.Price,
		booking.Currency,
		booking.DepositAmount,
		booking.DepositReceived,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, price = $2, deposit_amount = $3, deposit_received = $4,
			notes = $5, updated_at = $6
		WHERE id = $7
	`
	booking.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		booking.Status,
		booking.Price,
		booking.DepositAmount,
		booking.DepositReceived,
		booking.Notes,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
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

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
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

func (r *bookingRepository) ListForDay(ctx context.Context, artistID uuid.UUID, date model.Date) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE artist_id = $1 AND date = $2
		ORDER BY start_time
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, artistID, date); err != nil {
		return nil, fmt.Errorf("failed to list bookings for day: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	i := 1

	if filters.ArtistID != uuid.Nil {
		query += fmt.Sprintf(" AND artist_id = $%d", i)
		args = append(args, filters.ArtistID)
		i++
	}
	if filters.CustomerID != uuid.Nil {
		query += fmt.Sprintf(" AND customer_id = $%d", i)
		args = append(args, filters.CustomerID)
		i++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, filters.Status)
		i++
	}
	if filters.Date != nil {
		query += fmt.Sprintf(" AND date = $%d", i)
		args = append(args, *filters.Date)
		i++
	}
	query += " ORDER BY date, start_time"

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) MaxRefNo(ctx context.Context) (int, error) {
	var maxRef sql.NullInt64
	err := r.db.GetContext(ctx, &maxRef, `SELECT MAX(CAST(ref_no AS INTEGER)) FROM bookings`)
	if err != nil {
		return 0, fmt.Errorf("failed to get max booking ref no: %w", err)
	}
	return int(maxRef.Int64), nil
}
