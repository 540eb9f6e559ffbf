package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
)

// Validate decides whether a proposed window may be booked. It reads the
// calendar but never writes; Create holds the per artist/date lock around
// the validate+insert sequence so the decision stays atomic.
//
// Rejections, in evaluation order:
//   - InvalidWindow: duration is not positive
//   - ArtistClosed: no rule for the weekday, or the day is marked unavailable
//   - OutsideWorkingHours: window not fully inside the rule's open window
//   - SlotTaken: window overlaps a non-cancelled booking
func (s *Service) Validate(ctx context.Context, artistID uuid.UUID, date model.Date, start model.TimeOfDay, durationMinutes int) error {
	if durationMinutes <= 0 {
		return apperrors.Validation(apperrors.ReasonInvalidWindow, "duration must be positive")
	}
	// A window running past midnight needs no separate check: no rule ends
	// after 24:00, so the containment check below always rejects it.
	end := start.Add(durationMinutes)

	rule, err := s.hours.GetForDay(ctx, artistID, date.DayOfWeek())
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.Conflict(apperrors.ReasonArtistClosed, "artist is closed on this day")
	}
	if err != nil {
		return fmt.Errorf("failed to get working hours: %w", err)
	}
	if !rule.IsAvailable {
		return apperrors.Conflict(apperrors.ReasonArtistClosed, "artist is closed on this day")
	}
	if start < rule.StartTime || end > rule.EndTime {
		return apperrors.Conflict(apperrors.ReasonOutsideWorkingHours,
			fmt.Sprintf("booking must fall within working hours %s-%s", rule.StartTime, rule.EndTime))
	}

	existing, err := s.bookings.ListForDay(ctx, artistID, date)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}
	for _, b := range existing {
		if b.Blocking() && b.Overlaps(start, end) {
			return apperrors.Conflict(apperrors.ReasonSlotTaken,
				fmt.Sprintf("slot overlaps booking %s (%s-%s)", b.RefNo, b.StartTime, b.EndTime))
		}
	}
	return nil
}
