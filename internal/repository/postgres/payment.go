package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
)

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, ref_no, amount, currency, method, payment_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	payment.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.RefNo,
		payment.Amount,
		payment.Currency,
		payment.Method,
		payment.PaymentDate,
		payment.Notes,
		payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.Payment, error) {
	query := `
		SELECT id, booking_id, ref_no, amount, currency, method, payment_date, notes, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY ref_no
	`
	var payments []*model.Payment
	if err := r.db.SelectContext(ctx, &payments, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) DeleteForBooking(ctx context.Context, bookingID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE booking_id = $1`, bookingID); err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}
	return nil
}

func (r *paymentRepository) MaxRefNo(ctx context.Context) (int, error) {
	var maxRef sql.NullInt64
	err := r.db.GetContext(ctx, &maxRef, `SELECT MAX(CAST(ref_no AS INTEGER)) FROM payments`)
	if err != nil {
		return 0, fmt.Errorf("failed to get max payment ref no: %w", err)
	}
	return int(maxRef.Int64), nil
}
