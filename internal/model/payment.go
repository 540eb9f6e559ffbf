package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Payment is an append-only ledger entry; rows are never mutated after
// creation. RefNo is a zero-padded global sequence shared by all payments.
type Payment struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	BookingID   uuid.UUID     `db:"booking_id" json:"booking_id"`
	RefNo       string        `db:"ref_no" json:"ref_no"`
	Amount      float64       `db:"amount" json:"amount"`
	Currency    Currency      `db:"currency" json:"currency"`
	Method      PaymentMethod `db:"method" json:"method"`
	PaymentDate Date          `db:"payment_date" json:"payment_date"`
	Notes       string        `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

type RecordPaymentRequest struct {
	Amount float64       `json:"amount" binding:"required"`
	// Defaults to the booking's currency when empty.
	Currency    Currency      `json:"currency" binding:"omitempty,oneof=TRY USD EUR"`
	Method      PaymentMethod `json:"method" binding:"required,oneof=cash credit_card bank_transfer"`
	PaymentDate *Date         `json:"payment_date"`
	Notes       string        `json:"notes" binding:"max=1000"`
}

// Balance is the derived financial view of a booking, recomputed on demand.
type Balance struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Currency   Currency  `json:"currency"`
	Price      float64   `json:"price"`
	TotalPaid  float64   `json:"total_paid"`
	Remaining  float64   `json:"remaining"`
	IsOverpaid bool      `json:"is_overpaid"`
}
