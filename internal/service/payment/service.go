// Package payment is the append-only ledger of money recorded against
// bookings. Entries are never mutated or reordered; balances are recomputed
// from the ledger on every query.
package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
	"github.com/inkstudio/booking-api/internal/service/booking"
	"github.com/inkstudio/booking-api/internal/service/event"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
	"github.com/inkstudio/booking-api/pkg/metrics"
)

type Service struct {
	payments repository.PaymentRepository
	bookings *booking.Service
	events   *event.Service
	metrics  *metrics.Metrics

	// refMu serializes ref number allocation together with the insert that
	// claims the number; the sequence is global across all payments.
	// Per-booking exclusion is borrowed from the booking service so ledger
	// appends and cascading deletes share one lock domain.
	refMu sync.Mutex
	now   func() time.Time
}

func NewService(payments repository.PaymentRepository, bookings *booking.Service, events *event.Service, m *metrics.Metrics) *Service {
	return &Service{
		payments: payments,
		bookings: bookings,
		events:   events,
		metrics:  m,
		now:      time.Now,
	}
}

// Record appends a payment to the booking's ledger. Overpayment is allowed;
// the resulting balance carries an is_overpaid flag instead of a rejection,
// since capping is a caller policy, not a ledger rule.
func (s *Service) Record(ctx context.Context, bookingID uuid.UUID, req *model.RecordPaymentRequest) (*model.Payment, error) {
	if req.Amount <= 0 {
		return nil, apperrors.Validation(apperrors.ReasonInvalidAmount, "payment amount must be positive")
	}

	unlock := s.bookings.LockBooking(bookingID)
	defer unlock()

	// Existence is checked under the lock; a concurrent delete either went
	// first (not found here) or waits until this append lands.
	bkg, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = bkg.Currency
	}
	if currency != bkg.Currency {
		return nil, apperrors.Validation(apperrors.ReasonCurrencyMismatch,
			fmt.Sprintf("payment currency %s does not match booking currency %s", currency, bkg.Currency))
	}

	paymentDate := model.Date{Time: s.now()}
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := &model.Payment{
		ID:          uuid.New(),
		BookingID:   bookingID,
		Amount:      req.Amount,
		Currency:    currency,
		Method:      req.Method,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	}
	if err := s.claimRefNo(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.PaymentsRecorded.Inc()
		s.metrics.PaymentAmounts.WithLabelValues(string(currency), string(req.Method)).Observe(req.Amount)
	}
	if err := s.events.Record(ctx, model.EventPaymentRecorded, payment); err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to record payment event")
	}
	return payment, nil
}

func (s *Service) ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.Payment, error) {
	if _, err := s.bookings.Get(ctx, bookingID); err != nil {
		return nil, err
	}
	payments, err := s.payments.ListForBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// TotalPaid sums the booking's ledger in the booking's currency.
func (s *Service) TotalPaid(ctx context.Context, bookingID uuid.UUID) (float64, error) {
	payments, err := s.payments.ListForBooking(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("failed to list payments: %w", err)
	}
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total, nil
}

// Balance computes the derived financial view: total paid, remaining
// (clamped at zero) and the overpayment flag.
func (s *Service) Balance(ctx context.Context, bookingID uuid.UUID) (*model.Balance, error) {
	bkg, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.TotalPaid(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	remaining := bkg.Price - totalPaid
	if remaining < 0 {
		remaining = 0
	}

	return &model.Balance{
		BookingID:  bookingID,
		Currency:   bkg.Currency,
		Price:      bkg.Price,
		TotalPaid:  totalPaid,
		Remaining:  remaining,
		IsOverpaid: totalPaid > bkg.Price,
	}, nil
}

// claimRefNo allocates the next zero-padded ref number and inserts the
// payment before releasing the sequence mutex. Releasing earlier would let
// a concurrent recording against another booking read the same max and
// claim a duplicate number.
func (s *Service) claimRefNo(ctx context.Context, payment *model.Payment) error {
	s.refMu.Lock()
	defer s.refMu.Unlock()

	current, err := s.payments.MaxRefNo(ctx)
	if err != nil {
		return err
	}
	payment.RefNo = fmt.Sprintf("%06d", current+1)
	return s.payments.Create(ctx, payment)
}
