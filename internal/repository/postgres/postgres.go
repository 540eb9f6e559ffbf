package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/inkstudio/booking-api/internal/repository"
)

type artistRepository struct {
	db *sqlx.DB
}

type customerRepository struct {
	db *sqlx.DB
}

type workingHoursRepository struct {
	db *sqlx.DB
}

type bookingRepository struct {
	db *sqlx.DB
}

type paymentRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewArtistRepository(db *sqlx.DB) repository.ArtistRepository {
	return &artistRepository{db: db}
}

func NewCustomerRepository(db *sqlx.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func NewWorkingHoursRepository(db *sqlx.DB) repository.WorkingHoursRepository {
	return &workingHoursRepository{db: db}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func NewPaymentRepository(db *sqlx.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
