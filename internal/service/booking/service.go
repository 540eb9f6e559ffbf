// Package booking coordinates booking creation, lifecycle transitions and
// deletion. Creation is the one correctness-critical race in the system: two
// concurrent requests validating against the same snapshot could both pass
// and write overlapping intervals. All create calls for the same artist and
// date therefore serialize on a keyed mutex; unrelated keys run concurrently.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
	"github.com/inkstudio/booking-api/internal/service/artist"
	"github.com/inkstudio/booking-api/internal/service/customer"
	"github.com/inkstudio/booking-api/internal/service/event"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
	"github.com/inkstudio/booking-api/pkg/keylock"
	"github.com/inkstudio/booking-api/pkg/metrics"
)

type Service struct {
	bookings  repository.BookingRepository
	payments  repository.PaymentRepository
	hours     repository.WorkingHoursRepository
	artists   *artist.Service
	customers *customer.Service
	events    *event.Service
	metrics   *metrics.Metrics

	// calendarLocks serializes create per (artist, date); bookingLocks
	// serializes status transitions per booking id.
	calendarLocks *keylock.KeyedMutex
	bookingLocks  *keylock.KeyedMutex
	refSeq        *refSequence
}

func NewService(
	bookings repository.BookingRepository,
	payments repository.PaymentRepository,
	hours repository.WorkingHoursRepository,
	artists *artist.Service,
	customers *customer.Service,
	events *event.Service,
	m *metrics.Metrics,
) *Service {
	return &Service{
		bookings:      bookings,
		payments:      payments,
		hours:         hours,
		artists:       artists,
		customers:     customers,
		events:        events,
		metrics:       m,
		calendarLocks: keylock.New(),
		bookingLocks:  keylock.New(),
		refSeq:        &refSequence{next: bookings.MaxRefNo},
	}
}

func calendarKey(artistID uuid.UUID, date model.Date) string {
	return artistID.String() + "|" + date.String()
}

// LockBooking serializes lifecycle and ledger writes for one booking. The
// payment service shares this domain so a ledger append cannot interleave
// with a cascading delete.
func (s *Service) LockBooking(id uuid.UUID) func() {
	return s.bookingLocks.Lock(id.String())
}

// Create validates the request under the artist/date serialization lock and
// persists the booking with status pending. On rejection nothing is written.
func (s *Service) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if err := s.artists.Exists(ctx, req.ArtistID); err != nil {
		return nil, err
	}
	if err := s.customers.Exists(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	lockStart := time.Now()
	unlock, err := s.calendarLocks.LockCtx(ctx, calendarKey(req.ArtistID, req.Date))
	if err != nil {
		return nil, apperrors.Concurrency("booking attempt timed out waiting for the calendar", err)
	}
	defer unlock()
	if s.metrics != nil {
		s.metrics.BookingLockWait.Observe(time.Since(lockStart).Seconds())
	}

	if err := s.Validate(ctx, req.ArtistID, req.Date, req.StartTime, req.DurationMinutes); err != nil {
		if s.metrics != nil && (apperrors.IsConflict(err) || apperrors.IsValidation(err)) {
			s.metrics.BookingsRejected.WithLabelValues(apperrors.ReasonOf(err)).Inc()
		}
		return nil, err
	}

	booking := &model.Booking{
		ID:              uuid.New(),
		CustomerID:      req.CustomerID,
		ArtistID:        req.ArtistID,
		ServiceType:     req.ServiceType,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.StartTime.Add(req.DurationMinutes),
		DurationMinutes: req.DurationMinutes,
		Status:          model.BookingStatusPending,
		Price:           req.Price,
		Currency:        req.Currency,
		DepositAmount:   req.DepositAmount,
		Notes:           req.Notes,
	}
	// The insert happens inside the claim so the allocated number is taken
	// before any other caller can read the same max.
	err = s.refSeq.Claim(ctx, func(refNo string) error {
		booking.RefNo = refNo
		return s.bookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.record(ctx, model.EventBookingCreated, booking)
	return booking, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("booking", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *Service) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.bookings.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ChangeStatus applies a lifecycle transition. The time window is never
// touched; cancelling frees the interval for new bookings because cancelled
// rows are excluded from overlap checks.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, next model.BookingStatus) (*model.Booking, error) {
	if !next.Valid() {
		return nil, apperrors.Validation(apperrors.ReasonInvalidTransition,
			fmt.Sprintf("unknown status %q", next))
	}

	unlock := s.bookingLocks.Lock(id.String())
	defer unlock()

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, apperrors.State(apperrors.ReasonInvalidTransition,
			fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, next))
	}

	booking.Status = next
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if s.metrics != nil {
		s.metrics.StatusChanges.WithLabelValues(string(next)).Inc()
	}
	s.record(ctx, model.EventBookingStatusChanged, booking)
	return booking, nil
}

// Update applies edits that never move the booking on the calendar.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookingRequest) (*model.Booking, error) {
	unlock := s.bookingLocks.Lock(id.String())
	defer unlock()

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		booking.Price = *req.Price
	}
	if req.DepositAmount != nil {
		booking.DepositAmount = *req.DepositAmount
	}
	if req.DepositReceived != nil {
		booking.DepositReceived = *req.DepositReceived
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return booking, nil
}

// Delete removes a cancelled booking and its payments. Active bookings must
// be cancelled first.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.bookingLocks.Lock(id.String())
	defer unlock()

	booking, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status != model.BookingStatusCancelled {
		return apperrors.State(apperrors.ReasonInvalidTransition, "only cancelled bookings can be deleted")
	}

	if err := s.payments.DeleteForBooking(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking payments: %w", err)
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.record(ctx, model.EventBookingDeleted, map[string]interface{}{"booking_id": id})
	return nil
}

func (s *Service) record(ctx context.Context, eventType string, payload interface{}) {
	if err := s.events.Record(ctx, eventType, payload); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to record booking event")
	}
}
