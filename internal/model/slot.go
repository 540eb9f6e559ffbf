package model

import "github.com/google/uuid"

type SlotStatus string

const (
	// SlotAvailable: within working hours and free.
	SlotAvailable SlotStatus = "available"
	// SlotReserved: within working hours, covered by a non-cancelled booking.
	SlotReserved SlotStatus = "reserved"
	// SlotClosed: the artist has no rule for the day, or the day is marked
	// unavailable outright.
	SlotClosed SlotStatus = "closed"
	// SlotOutsideHours: a rule exists for the day but the tick falls before
	// or after its window.
	SlotOutsideHours SlotStatus = "outside_hours"
)

// Slot is one discretized tick of an artist's day. Slots are derived from
// working hours and bookings on every query and never persisted.
type Slot struct {
	Date      Date       `json:"date"`
	StartTime TimeOfDay  `json:"start_time"`
	EndTime   TimeOfDay  `json:"end_time"`
	Status    SlotStatus `json:"status"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
}
