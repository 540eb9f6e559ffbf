package model

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Email     string    `db:"email" json:"email,omitempty"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Phone string `json:"phone" binding:"max=32"`
	Email string `json:"email" binding:"omitempty,email"`
	Notes string `json:"notes" binding:"max=1000"`
}
