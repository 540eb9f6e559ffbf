package booking_test

import (
	"context"
	"fmt"
	"sync"
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

var (
	monday = model.NewDate(2025, time.June, 2)
	sunday = model.NewDate(2025, time.June, 1)
)

type fixture struct {
	bookings   *booking.Service
	schedule   *schedule.Service
	artists    *artist.Service
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
	paymentRepo := memory.NewPaymentRepository()

	artists := artist.NewService(artistRepo, time.Minute)
	customers := customer.NewService(customerRepo)
	events := event.NewService(memory.NewOutboxRepository())

	a, err := artists.Create(ctx, &model.CreateArtistRequest{Name: "Deniz", Specialty: "fineline"})
	require.NoError(t, err)
	c, err := customers.Create(ctx, &model.CreateCustomerRequest{Name: "Mert"})
	require.NoError(t, err)

	return &fixture{
		bookings:   booking.NewService(bookingRepo, paymentRepo, hoursRepo, artists, customers, events, nil),
		schedule:   schedule.NewService(hoursRepo, bookingRepo, artists, events),
		artists:    artists,
		artistID:   a.ID,
		customerID: c.ID,
	}
}

// addOpenArtist registers another artist working Mondays 09:00-18:00.
func (f *fixture) addOpenArtist(t *testing.T, name string) uuid.UUID {
	t.Helper()
	a, err := f.artists.Create(context.Background(), &model.CreateArtistRequest{Name: name})
	require.NoError(t, err)

	rules := make([]model.WorkingHourRuleInput, 0, 7)
	for day := 0; day < 7; day++ {
		rules = append(rules, model.WorkingHourRuleInput{
			DayOfWeek:   day,
			StartTime:   at(t, "09:00"),
			EndTime:     at(t, "18:00"),
			IsAvailable: day == 1,
		})
	}
	_, err = f.schedule.ReplaceWorkingHours(context.Background(), a.ID, rules)
	require.NoError(t, err)
	return a.ID
}

// openMondays gives the artist a single open weekday, Monday 09:00-18:00.
func (f *fixture) openMondays(t *testing.T) {
	t.Helper()
	rules := make([]model.WorkingHourRuleInput, 0, 7)
	for day := 0; day < 7; day++ {
		rules = append(rules, model.WorkingHourRuleInput{
			DayOfWeek:   day,
			StartTime:   at(t, "09:00"),
			EndTime:     at(t, "18:00"),
			IsAvailable: day == 1,
		})
	}
	_, err := f.schedule.ReplaceWorkingHours(context.Background(), f.artistID, rules)
	require.NoError(t, err)
}

func (f *fixture) create(t *testing.T, date model.Date, start string, minutes int) (*model.Booking, error) {
	t.Helper()
	return f.bookings.Create(context.Background(), &model.CreateBookingRequest{
		CustomerID:      f.customerID,
		ArtistID:        f.artistID,
		ServiceType:     model.ServiceTypeTattoo,
		Date:            date,
		StartTime:       at(t, start),
		DurationMinutes: minutes,
		Price:           1000,
		Currency:        model.CurrencyTRY,
	})
}

func at(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	v, err := model.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)

	first, err := f.create(t, monday, "09:00", 60)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, first.Status)
	assert.Equal(t, "000001", first.RefNo)
	assert.Equal(t, at(t, "10:00"), first.EndTime)

	_, err = f.bookings.ChangeStatus(context.Background(), first.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)

	// overlapping the confirmed booking is rejected
	_, err = f.create(t, monday, "09:30", 60)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, apperrors.ReasonSlotTaken, apperrors.ReasonOf(err))

	// back to back is fine, intervals are half-open
	second, err := f.create(t, monday, "10:00", 60)
	require.NoError(t, err)
	assert.Equal(t, "000002", second.RefNo)
}

func TestCreateBookingRejections(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)

	cases := []struct {
		name    string
		date    model.Date
		start   string
		minutes int
		reason  string
	}{
		{"before opening", monday, "08:00", 60, apperrors.ReasonOutsideWorkingHours},
		{"past closing", monday, "17:30", 60, apperrors.ReasonOutsideWorkingHours},
		{"closed day", sunday, "10:00", 60, apperrors.ReasonArtistClosed},
		{"zero duration", monday, "10:00", 0, apperrors.ReasonInvalidWindow},
		{"negative duration", monday, "10:00", -30, apperrors.ReasonInvalidWindow},
		{"crosses midnight", monday, "23:30", 60, apperrors.ReasonOutsideWorkingHours},
		{"crosses midnight on closed day", sunday, "23:30", 60, apperrors.ReasonArtistClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create(t, tc.date, tc.start, tc.minutes)
			require.Error(t, err)
			assert.Equal(t, tc.reason, apperrors.ReasonOf(err))
		})
	}

	// rejections write nothing
	bookings, err := f.schedule.GetBookings(context.Background(), f.artistID, monday)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBookingNoWorkingHours(t *testing.T) {
	f := newFixture(t)

	// no rules at all behaves like a closed day
	_, err := f.create(t, monday, "10:00", 60)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonArtistClosed, apperrors.ReasonOf(err))
}

func TestCreateBookingUnknownParticipants(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)
	ctx := context.Background()

	_, err := f.bookings.Create(ctx, &model.CreateBookingRequest{
		CustomerID:      f.customerID,
		ArtistID:        uuid.New(),
		ServiceType:     model.ServiceTypeTattoo,
		Date:            monday,
		StartTime:       at(t, "10:00"),
		DurationMinutes: 60,
		Currency:        model.CurrencyTRY,
	})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = f.bookings.Create(ctx, &model.CreateBookingRequest{
		CustomerID:      uuid.New(),
		ArtistID:        f.artistID,
		ServiceType:     model.ServiceTypeTattoo,
		Date:            monday,
		StartTime:       at(t, "10:00"),
		DurationMinutes: 60,
		Currency:        model.CurrencyTRY,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestChangeStatus(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)
	ctx := context.Background()

	b, err := f.create(t, monday, "10:00", 60)
	require.NoError(t, err)

	b, err = f.bookings.ChangeStatus(ctx, b.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)

	b, err = f.bookings.ChangeStatus(ctx, b.ID, model.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, b.Status)

	// completed is terminal
	_, err = f.bookings.ChangeStatus(ctx, b.ID, model.BookingStatusCancelled)
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))
	assert.Equal(t, apperrors.ReasonInvalidTransition, apperrors.ReasonOf(err))
}

func TestChangeStatusSkippingConfirmed(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)

	b, err := f.create(t, monday, "10:00", 60)
	require.NoError(t, err)

	_, err = f.bookings.ChangeStatus(context.Background(), b.ID, model.BookingStatusCompleted)
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))
}

func TestCancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)
	ctx := context.Background()

	first, err := f.create(t, monday, "10:00", 60)
	require.NoError(t, err)

	_, err = f.create(t, monday, "10:00", 60)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonSlotTaken, apperrors.ReasonOf(err))

	_, err = f.bookings.ChangeStatus(ctx, first.ID, model.BookingStatusCancelled)
	require.NoError(t, err)

	// the identical window is accepted once the holder is cancelled
	_, err = f.create(t, monday, "10:00", 60)
	assert.NoError(t, err)
}

func TestConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)

	req := &model.CreateBookingRequest{
		CustomerID:      f.customerID,
		ArtistID:        f.artistID,
		ServiceType:     model.ServiceTypeTattoo,
		Date:            monday,
		StartTime:       at(t, "11:00"),
		DurationMinutes: 60,
		Price:           1000,
		Currency:        model.CurrencyTRY,
	}

	const racers = 2
	errs := make([]error, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			r := *req
			_, errs[i] = f.bookings.Create(context.Background(), &r)
		}(i)
	}
	wg.Wait()

	var accepted, rejected int
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		rejected++
		assert.Equal(t, apperrors.ReasonSlotTaken, apperrors.ReasonOf(err))
	}
	assert.Equal(t, 1, accepted, "exactly one racer should win the slot")
	assert.Equal(t, 1, rejected)
}

func TestConcurrentCreateAcrossCalendars(t *testing.T) {
	f := newFixture(t)

	// distinct artists serialize only on the ref number sequence; every
	// create must still get its own number
	const artists = 8
	ids := make([]uuid.UUID, artists)
	for i := range ids {
		ids[i] = f.addOpenArtist(t, fmt.Sprintf("artist-%d", i))
	}
	start := at(t, "11:00")

	results := make([]*model.Booking, artists)
	errs := make([]error, artists)
	var wg sync.WaitGroup
	wg.Add(artists)
	for i, artistID := range ids {
		go func(i int, artistID uuid.UUID) {
			defer wg.Done()
			results[i], errs[i] = f.bookings.Create(context.Background(), &model.CreateBookingRequest{
				CustomerID:      f.customerID,
				ArtistID:        artistID,
				ServiceType:     model.ServiceTypeTattoo,
				Date:            monday,
				StartTime:       start,
				DurationMinutes: 60,
				Price:           1000,
				Currency:        model.CurrencyTRY,
			})
		}(i, artistID)
	}
	wg.Wait()

	seen := make(map[string]bool, artists)
	for i, b := range results {
		require.NoError(t, errs[i])
		require.NotNil(t, b)
		assert.False(t, seen[b.RefNo], "ref no %s allocated twice", b.RefNo)
		seen[b.RefNo] = true
	}
}

func TestUpdateBooking(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)
	ctx := context.Background()

	b, err := f.create(t, monday, "10:00", 60)
	require.NoError(t, err)

	price := 1500.0
	received := true
	notes := "cover-up, budget extra time"
	b, err = f.bookings.Update(ctx, b.ID, &model.UpdateBookingRequest{
		Price:           &price,
		DepositReceived: &received,
		Notes:           &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, b.Price)
	assert.True(t, b.DepositReceived)
	assert.Equal(t, notes, b.Notes)

	// the calendar fields stay put
	assert.Equal(t, at(t, "10:00"), b.StartTime)
	assert.Equal(t, at(t, "11:00"), b.EndTime)
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)
	ctx := context.Background()

	b, err := f.create(t, monday, "10:00", 60)
	require.NoError(t, err)

	// active bookings cannot be deleted
	err = f.bookings.Delete(ctx, b.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))

	_, err = f.bookings.ChangeStatus(ctx, b.ID, model.BookingStatusCancelled)
	require.NoError(t, err)

	require.NoError(t, f.bookings.Delete(ctx, b.ID))

	_, err = f.bookings.Get(ctx, b.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListBookingsFiltered(t *testing.T) {
	f := newFixture(t)
	f.openMondays(t)
	ctx := context.Background()

	first, err := f.create(t, monday, "09:00", 60)
	require.NoError(t, err)
	_, err = f.create(t, monday, "11:00", 60)
	require.NoError(t, err)
	_, err = f.bookings.ChangeStatus(ctx, first.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)

	all, err := f.bookings.List(ctx, &model.BookingFilters{ArtistID: f.artistID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	confirmed, err := f.bookings.List(ctx, &model.BookingFilters{Status: model.BookingStatusConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, first.ID, confirmed[0].ID)
}
