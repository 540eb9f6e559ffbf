package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
)

// ErrNotFound is returned by all repositories when the requested row does not
// exist. Services translate it into the application error taxonomy.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	ArtistRepository interface {
		Create(ctx context.Context, artist *model.Artist) error
		Get(ctx context.Context, id uuid.UUID) (*model.Artist, error)
		List(ctx context.Context) ([]*model.Artist, error)
		Update(ctx context.Context, artist *model.Artist) error
	}

	CustomerRepository interface {
		Create(ctx context.Context, customer *model.Customer) error
		Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	}

	WorkingHoursRepository interface {
		// Replace removes the artist's existing rules and inserts the given
		// set in a single transaction; no partial update is observable.
		Replace(ctx context.Context, artistID uuid.UUID, rules []*model.WorkingHourRule) error
		GetForDay(ctx context.Context, artistID uuid.UUID, dayOfWeek int) (*model.WorkingHourRule, error)
		ListForArtist(ctx context.Context, artistID uuid.UUID) ([]*model.WorkingHourRule, error)
	}

	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		Update(ctx context.Context, booking *model.Booking) error
		Delete(ctx context.Context, id uuid.UUID) error
		// ListForDay returns all bookings of every status for the artist and
		// date, ordered by start time.
		ListForDay(ctx context.Context, artistID uuid.UUID, date model.Date) ([]*model.Booking, error)
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		MaxRefNo(ctx context.Context) (int, error)
	}

	PaymentRepository interface {
		Create(ctx context.Context, payment *model.Payment) error
		ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.Payment, error)
		DeleteForBooking(ctx context.Context, bookingID uuid.UUID) error
		MaxRefNo(ctx context.Context) (int, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	}
)
