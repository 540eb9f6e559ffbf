package model

import (
	"time"

	"github.com/google/uuid"
)

type Artist struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Specialty string    `db:"specialty" json:"specialty,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateArtistRequest struct {
	Name      string `json:"name" binding:"required,max=120"`
	Specialty string `json:"specialty" binding:"max=120"`
}
