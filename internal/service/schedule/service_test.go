package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository/memory"
	"github.com/inkstudio/booking-api/internal/service/artist"
	"github.com/inkstudio/booking-api/internal/service/booking"
	"github.com/inkstudio/booking-api/internal/service/customer"
	"github.com/inkstudio/booking-api/internal/service/event"
	"github.com/inkstudio/booking-api/internal/service/schedule"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
)

var monday = model.NewDate(2025, time.June, 2)

type fixture struct {
	schedule   *schedule.Service
	bookings   *booking.Service
	artistID   uuid.UUID
	customerID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	artistRepo := memory.NewArtistRepository()
	customerRepo := memory.NewCustomerRepository()
	hoursRepo := memory.NewWorkingHoursRepository()
	bookingRepo := memory.NewBookingRepository()

	artists := artist.NewService(artistRepo, time.Minute)
	customers := customer.NewService(customerRepo)
	events := event.NewService(memory.NewOutboxRepository())

	a, err := artists.Create(ctx, &model.CreateArtistRequest{Name: "Deniz"})
	require.NoError(t, err)
	c, err := customers.Create(ctx, &model.CreateCustomerRequest{Name: "Mert"})
	require.NoError(t, err)

	return &fixture{
		schedule:   schedule.NewService(hoursRepo, bookingRepo, artists, events),
		bookings:   booking.NewService(bookingRepo, memory.NewPaymentRepository(), hoursRepo, artists, customers, events, nil),
		artistID:   a.ID,
		customerID: c.ID,
	}
}

// weekRules builds a full weekly set. Days listed in open are 09:00-18:00
// available, the rest are marked unavailable.
func weekRules(open ...int) []model.WorkingHourRuleInput {
	isOpen := make(map[int]bool, len(open))
	for _, day := range open {
		isOpen[day] = true
	}
	rules := make([]model.WorkingHourRuleInput, 0, 7)
	for day := 0; day < 7; day++ {
		rules = append(rules, model.WorkingHourRuleInput{
			DayOfWeek:   day,
			StartTime:   model.TimeOfDay(9 * 60),
			EndTime:     model.TimeOfDay(18 * 60),
			IsAvailable: isOpen[day],
		})
	}
	return rules
}

func TestReplaceWorkingHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rules, err := f.schedule.ReplaceWorkingHours(ctx, f.artistID, weekRules(1, 2, 3))
	require.NoError(t, err)
	assert.Len(t, rules, 7)

	rule, err := f.schedule.GetWorkingHours(ctx, f.artistID, 1)
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.True(t, rule.IsAvailable)
	assert.Equal(t, model.TimeOfDay(9*60), rule.StartTime)

	sunday, err := f.schedule.GetWorkingHours(ctx, f.artistID, 0)
	require.NoError(t, err)
	require.NotNil(t, sunday)
	assert.False(t, sunday.IsAvailable)
}

func TestReplaceWorkingHoursValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		rules []model.WorkingHourRuleInput
	}{
		{"too few rules", weekRules(1)[:6]},
		{"duplicate day", func() []model.WorkingHourRuleInput {
			rules := weekRules(1)
			rules[6].DayOfWeek = 0
			return rules
		}()},
		{"start after end", func() []model.WorkingHourRuleInput {
			rules := weekRules(1)
			rules[1].StartTime = model.TimeOfDay(18 * 60)
			rules[1].EndTime = model.TimeOfDay(9 * 60)
			return rules
		}()},
		{"day out of range", func() []model.WorkingHourRuleInput {
			rules := weekRules(1)
			rules[6].DayOfWeek = 7
			return rules
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.schedule.ReplaceWorkingHours(ctx, f.artistID, tc.rules)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, apperrors.ReasonInvalidRule, apperrors.ReasonOf(err))
		})
	}
}

func TestReplaceWorkingHoursClosedDayWindowIgnored(t *testing.T) {
	f := newFixture(t)

	// a reversed window on an unavailable day is fine, the window is unused
	rules := weekRules(1)
	rules[0].StartTime = 0
	rules[0].EndTime = 0
	_, err := f.schedule.ReplaceWorkingHours(context.Background(), f.artistID, rules)
	assert.NoError(t, err)
}

func TestGetWorkingHoursAbsent(t *testing.T) {
	f := newFixture(t)

	rule, err := f.schedule.GetWorkingHours(context.Background(), f.artistID, 1)
	require.NoError(t, err)
	assert.Nil(t, rule)
}

func TestGenerateSlotsNoRules(t *testing.T) {
	f := newFixture(t)

	slots, err := f.schedule.GenerateSlots(context.Background(), f.artistID, monday, 30)
	require.NoError(t, err)
	require.Len(t, slots, 48)
	for _, slot := range slots {
		assert.Equal(t, model.SlotClosed, slot.Status)
	}
}

func TestGenerateSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.schedule.ReplaceWorkingHours(ctx, f.artistID, weekRules(1))
	require.NoError(t, err)

	reserved, err := f.bookings.Create(ctx, &model.CreateBookingRequest{
		CustomerID:      f.customerID,
		ArtistID:        f.artistID,
		ServiceType:     model.ServiceTypeTattoo,
		Date:            monday,
		StartTime:       model.TimeOfDay(9 * 60),
		DurationMinutes: 60,
		Price:           1000,
		Currency:        model.CurrencyTRY,
	})
	require.NoError(t, err)

	cancelled, err := f.bookings.Create(ctx, &model.CreateBookingRequest{
		CustomerID:      f.customerID,
		ArtistID:        f.artistID,
		ServiceType:     model.ServiceTypePiercing,
		Date:            monday,
		StartTime:       model.TimeOfDay(14 * 60),
		DurationMinutes: 60,
		Price:           200,
		Currency:        model.CurrencyTRY,
	})
	require.NoError(t, err)
	_, err = f.bookings.ChangeStatus(ctx, cancelled.ID, model.BookingStatusCancelled)
	require.NoError(t, err)

	slots, err := f.schedule.GenerateSlots(ctx, f.artistID, monday, 30)
	require.NoError(t, err)
	require.Len(t, slots, 48)

	counts := map[model.SlotStatus]int{}
	for _, slot := range slots {
		counts[slot.Status]++
	}
	// 09:00-18:00 open: 18 ticks; two covered by the booking
	assert.Equal(t, 30, counts[model.SlotOutsideHours])
	assert.Equal(t, 2, counts[model.SlotReserved])
	assert.Equal(t, 16, counts[model.SlotAvailable])
	assert.Equal(t, 0, counts[model.SlotClosed])

	// reserved ticks point back at their booking
	nine := slots[18]
	assert.Equal(t, model.TimeOfDay(9*60), nine.StartTime)
	assert.Equal(t, model.SlotReserved, nine.Status)
	require.NotNil(t, nine.BookingID)
	assert.Equal(t, reserved.ID, *nine.BookingID)

	// the cancelled booking's window stays available
	two := slots[28]
	assert.Equal(t, model.TimeOfDay(14*60), two.StartTime)
	assert.Equal(t, model.SlotAvailable, two.Status)
	assert.Nil(t, two.BookingID)
}

func TestGenerateSlotsClosedDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.schedule.ReplaceWorkingHours(ctx, f.artistID, weekRules(1))
	require.NoError(t, err)

	// Sunday has a rule but is marked unavailable
	sunday := model.NewDate(2025, time.June, 1)
	slots, err := f.schedule.GenerateSlots(ctx, f.artistID, sunday, 30)
	require.NoError(t, err)
	for _, slot := range slots {
		assert.Equal(t, model.SlotClosed, slot.Status)
	}
}

func TestGenerateSlotsTickSizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.schedule.ReplaceWorkingHours(ctx, f.artistID, weekRules(1))
	require.NoError(t, err)

	hourly, err := f.schedule.GenerateSlots(ctx, f.artistID, monday, 60)
	require.NoError(t, err)
	assert.Len(t, hourly, 24)

	// non-positive tick falls back to the default
	defaulted, err := f.schedule.GenerateSlots(ctx, f.artistID, monday, 0)
	require.NoError(t, err)
	assert.Len(t, defaulted, 48)

	// a tick that does not divide the day evenly still covers it fully
	uneven, err := f.schedule.GenerateSlots(ctx, f.artistID, monday, 50)
	require.NoError(t, err)
	require.NotEmpty(t, uneven)
	last := uneven[len(uneven)-1]
	assert.Equal(t, model.EndOfDay, last.EndTime)
}

func TestGetBookingsOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.schedule.ReplaceWorkingHours(ctx, f.artistID, weekRules(1))
	require.NoError(t, err)

	for _, start := range []int{14 * 60, 9 * 60, 11 * 60} {
		_, err := f.bookings.Create(ctx, &model.CreateBookingRequest{
			CustomerID:      f.customerID,
			ArtistID:        f.artistID,
			ServiceType:     model.ServiceTypeConsultation,
			Date:            monday,
			StartTime:       model.TimeOfDay(start),
			DurationMinutes: 30,
			Price:           100,
			Currency:        model.CurrencyTRY,
		})
		require.NoError(t, err)
	}

	bookings, err := f.schedule.GetBookings(ctx, f.artistID, monday)
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.True(t, bookings[0].StartTime < bookings[1].StartTime)
	assert.True(t, bookings[1].StartTime < bookings[2].StartTime)
}

func TestScheduleUnknownArtist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.schedule.GenerateSlots(ctx, uuid.New(), monday, 30)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = f.schedule.ReplaceWorkingHours(ctx, uuid.New(), weekRules(1))
	assert.True(t, apperrors.IsNotFound(err))
}
