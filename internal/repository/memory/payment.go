package memory

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
)

func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment.CreatedAt = time.Now()
	r.payments[payment.ID] = *payment
	return nil
}

func (r *PaymentRepository) ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []*model.Payment
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			payment := p
			payments = append(payments, &payment)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].RefNo < payments[j].RefNo })
	return payments, nil
}

func (r *PaymentRepository) DeleteForBooking(ctx context.Context, bookingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.payments {
		if p.BookingID == bookingID {
			delete(r.payments, id)
		}
	}
	return nil
}

func (r *PaymentRepository) MaxRefNo(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	maxRef := 0
	for _, p := range r.payments {
		if n, err := strconv.Atoi(p.RefNo); err == nil && n > maxRef {
			maxRef = n
		}
	}
	return maxRef, nil
}
