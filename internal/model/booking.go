package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo encodes the booking lifecycle: pending -> confirmed ->
// completed, with cancellation allowed from pending or confirmed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	default:
		return false
	}
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type ServiceType string

const (
	ServiceTypeTattoo       ServiceType = "tattoo"
	ServiceTypePiercing     ServiceType = "piercing"
	ServiceTypeConsultation ServiceType = "consultation"
)

type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

type Booking struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	RefNo           string        `db:"ref_no" json:"ref_no"`
	CustomerID      uuid.UUID     `db:"customer_id" json:"customer_id"`
	ArtistID        uuid.UUID     `db:"artist_id" json:"artist_id"`
	ServiceType     ServiceType   `db:"service_type" json:"service_type"`
	Date            Date          `db:"date" json:"date"`
	StartTime       TimeOfDay     `db:"start_time" json:"start_time"`
	EndTime         TimeOfDay     `db:"end_time" json:"end_time"`
	DurationMinutes int           `db:"duration_minutes" json:"duration_minutes"`
	Status          BookingStatus `db:"status" json:"status"`
	Price           float64       `db:"price" json:"price"`
	Currency        Currency      `db:"currency" json:"currency"`
	DepositAmount   float64       `db:"deposit_amount" json:"deposit_amount"`
	DepositReceived bool          `db:"deposit_received" json:"deposit_received"`
	Notes           string        `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// Overlaps tests half-open interval overlap with [start, end).
func (b *Booking) Overlaps(start, end TimeOfDay) bool {
	return max(b.StartTime, start) < min(b.EndTime, end)
}

// Blocking reports whether the booking holds its calendar interval.
// Cancelled bookings free their slot for reuse.
func (b *Booking) Blocking() bool {
	return b.Status != BookingStatusCancelled
}

type CreateBookingRequest struct {
	CustomerID      uuid.UUID   `json:"customer_id" binding:"required"`
	ArtistID        uuid.UUID   `json:"artist_id" binding:"required"`
	ServiceType     ServiceType `json:"service_type" binding:"required,oneof=tattoo piercing consultation"`
	Date            Date        `json:"date" binding:"required"`
	StartTime       TimeOfDay   `json:"start_time"`
	DurationMinutes int         `json:"duration_minutes" binding:"required"`
	Price           float64     `json:"price" binding:"gte=0"`
	Currency        Currency    `json:"currency" binding:"required,oneof=TRY USD EUR"`
	DepositAmount   float64     `json:"deposit_amount" binding:"gte=0"`
	Notes           string      `json:"notes" binding:"max=2000"`
}

// UpdateBookingRequest covers edits that never move the booking on the
// calendar; date, time and artist are fixed at creation.
type UpdateBookingRequest struct {
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	DepositAmount   *float64 `json:"deposit_amount" binding:"omitempty,gte=0"`
	DepositReceived *bool    `json:"deposit_received"`
	Notes           *string  `json:"notes" binding:"omitempty,max=2000"`
}

type ChangeStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

type BookingFilters struct {
	ArtistID   uuid.UUID
	CustomerID uuid.UUID
	Status     BookingStatus
	Date       *Date
}
