// Package schedule owns the calendar model: per-artist working-hour rules and
// the derived availability grid.
package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
	"github.com/inkstudio/booking-api/internal/service/artist"
	"github.com/inkstudio/booking-api/internal/service/event"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
)

const DefaultTickMinutes = 30

type Service struct {
	hours    repository.WorkingHoursRepository
	bookings repository.BookingRepository
	artists  *artist.Service
	events   *event.Service
}

func NewService(hours repository.WorkingHoursRepository, bookings repository.BookingRepository, artists *artist.Service, events *event.Service) *Service {
	return &Service{
		hours:    hours,
		bookings: bookings,
		artists:  artists,
		events:   events,
	}
}

// ReplaceWorkingHours swaps the artist's full weekly rule set. Exactly one
// rule per weekday is required; there is no partial update. Called once at
// artist onboarding and again whenever hours are edited, so the calendar
// never writes defaults implicitly during reads.
func (s *Service) ReplaceWorkingHours(ctx context.Context, artistID uuid.UUID, inputs []model.WorkingHourRuleInput) ([]*model.WorkingHourRule, error) {
	if err := s.artists.Exists(ctx, artistID); err != nil {
		return nil, err
	}
	if len(inputs) != 7 {
		return nil, apperrors.Validation(apperrors.ReasonInvalidRule, "exactly one rule per weekday is required")
	}

	seen := [7]bool{}
	rules := make([]*model.WorkingHourRule, 0, 7)
	for _, in := range inputs {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			return nil, apperrors.Validation(apperrors.ReasonInvalidRule,
				fmt.Sprintf("day_of_week %d out of range", in.DayOfWeek))
		}
		if seen[in.DayOfWeek] {
			return nil, apperrors.Validation(apperrors.ReasonInvalidRule,
				fmt.Sprintf("duplicate rule for day_of_week %d", in.DayOfWeek))
		}
		seen[in.DayOfWeek] = true

		if in.IsAvailable && in.StartTime >= in.EndTime {
			return nil, apperrors.Validation(apperrors.ReasonInvalidRule,
				fmt.Sprintf("day_of_week %d: start_time must be before end_time", in.DayOfWeek))
		}

		rules = append(rules, &model.WorkingHourRule{
			DayOfWeek:   in.DayOfWeek,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			IsAvailable: in.IsAvailable,
		})
	}

	if err := s.hours.Replace(ctx, artistID, rules); err != nil {
		return nil, fmt.Errorf("failed to replace working hours: %w", err)
	}

	if err := s.events.Record(ctx, model.EventWorkingHoursReplaced, map[string]interface{}{
		"artist_id": artistID,
	}); err != nil {
		log.Error().Err(err).Str("artist_id", artistID.String()).Msg("failed to record working hours event")
	}
	return rules, nil
}

// GetWorkingHours returns the rule for one weekday, nil when the artist has
// no rule for that day.
func (s *Service) GetWorkingHours(ctx context.Context, artistID uuid.UUID, dayOfWeek int) (*model.WorkingHourRule, error) {
	if err := s.artists.Exists(ctx, artistID); err != nil {
		return nil, err
	}

	rule, err := s.hours.GetForDay(ctx, artistID, dayOfWeek)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get working hours: %w", err)
	}
	return rule, nil
}

func (s *Service) ListWorkingHours(ctx context.Context, artistID uuid.UUID) ([]*model.WorkingHourRule, error) {
	if err := s.artists.Exists(ctx, artistID); err != nil {
		return nil, err
	}
	rules, err := s.hours.ListForArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	return rules, nil
}

// GetBookings returns the artist's bookings for a date, all statuses, ordered
// by start time.
func (s *Service) GetBookings(ctx context.Context, artistID uuid.UUID, date model.Date) ([]*model.Booking, error) {
	if err := s.artists.Exists(ctx, artistID); err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListForDay(ctx, artistID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// GenerateSlots classifies the artist's full day (00:00-24:00) into ticks of
// tickMinutes. The grid is derived from working hours and bookings on every
// call and never stored, so it always reflects the current calendar.
func (s *Service) GenerateSlots(ctx context.Context, artistID uuid.UUID, date model.Date, tickMinutes int) ([]model.Slot, error) {
	if tickMinutes <= 0 {
		tickMinutes = DefaultTickMinutes
	}

	rule, err := s.GetWorkingHours(ctx, artistID, date.DayOfWeek())
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListForDay(ctx, artistID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	slots := make([]model.Slot, 0, model.MinutesPerDay/tickMinutes)
	for tick := model.TimeOfDay(0); tick < model.EndOfDay; tick = tick.Add(tickMinutes) {
		end := tick.Add(tickMinutes)
		if end > model.EndOfDay {
			end = model.EndOfDay
		}
		slots = append(slots, classifyTick(date, tick, end, rule, bookings))
	}
	return slots, nil
}

// classifyTick applies the classification rules in priority order: closed
// when the day has no usable rule, outside-hours when a rule exists but does
// not cover the tick, reserved when a blocking booking covers it, otherwise
// available. Bookings arrive ordered by start time so the first match wins.
func classifyTick(date model.Date, start, end model.TimeOfDay, rule *model.WorkingHourRule, bookings []*model.Booking) model.Slot {
	slot := model.Slot{
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}

	if rule == nil || !rule.IsAvailable {
		slot.Status = model.SlotClosed
		return slot
	}
	if start < rule.StartTime || start >= rule.EndTime {
		slot.Status = model.SlotOutsideHours
		return slot
	}

	for _, b := range bookings {
		if b.Blocking() && b.Overlaps(start, end) {
			slot.Status = model.SlotReserved
			id := b.ID
			slot.BookingID = &id
			return slot
		}
	}

	slot.Status = model.SlotAvailable
	return slot
}
