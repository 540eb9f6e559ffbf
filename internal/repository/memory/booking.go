package memory

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
)

func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	booking.UpdatedAt = time.Now()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *BookingRepository) ListForDay(ctx context.Context, artistID uuid.UUID, date model.Date) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []*model.Booking
	for _, b := range r.bookings {
		if b.ArtistID == artistID && b.Date.String() == date.String() {
			booking := b
			bookings = append(bookings, &booking)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartTime < bookings[j].StartTime })
	return bookings, nil
}

func (r *BookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []*model.Booking
	for _, b := range r.bookings {
		if filters.ArtistID != uuid.Nil && b.ArtistID != filters.ArtistID {
			continue
		}
		if filters.CustomerID != uuid.Nil && b.CustomerID != filters.CustomerID {
			continue
		}
		if filters.Status != "" && b.Status != filters.Status {
			continue
		}
		if filters.Date != nil && b.Date.String() != filters.Date.String() {
			continue
		}
		booking := b
		bookings = append(bookings, &booking)
	}
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Date.Equal(bookings[j].Date.Time) {
			return bookings[i].Date.Before(bookings[j].Date.Time)
		}
		return bookings[i].StartTime < bookings[j].StartTime
	})
	return bookings, nil
}

func (r *BookingRepository) MaxRefNo(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	maxRef := 0
	for _, b := range r.bookings {
		if n, err := strconv.Atoi(b.RefNo); err == nil && n > maxRef {
			maxRef = n
		}
	}
	return maxRef, nil
}
