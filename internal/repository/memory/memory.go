// Package memory provides map-backed implementations of the repository
// interfaces. They are used by unit tests and return copies so concurrent
// readers never observe a torn record.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
)

type ArtistRepository struct {
	mu      sync.RWMutex
	artists map[uuid.UUID]model.Artist
}

func NewArtistRepository() *ArtistRepository {
	return &ArtistRepository{artists: make(map[uuid.UUID]model.Artist)}
}

type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]model.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: make(map[uuid.UUID]model.Customer)}
}

type WorkingHoursRepository struct {
	mu    sync.RWMutex
	rules map[uuid.UUID][]model.WorkingHourRule
}

func NewWorkingHoursRepository() *WorkingHoursRepository {
	return &WorkingHoursRepository{rules: make(map[uuid.UUID][]model.WorkingHourRule)}
}

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]model.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[uuid.UUID]model.Booking)}
}

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]model.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[uuid.UUID]model.Payment)}
}

type OutboxRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID]model.OutboxEvent
	order  []uuid.UUID
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{events: make(map[uuid.UUID]model.OutboxEvent)}
}
