package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkingHourRule is the open/closed window for one artist on one weekday.
// There is exactly one rule per (artist, weekday); editing working hours
// replaces the artist's full set of seven rules.
type WorkingHourRule struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ArtistID    uuid.UUID `db:"artist_id" json:"artist_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartTime   TimeOfDay `db:"start_time" json:"start_time"`
	EndTime     TimeOfDay `db:"end_time" json:"end_time"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type WorkingHourRuleInput struct {
	DayOfWeek   int       `json:"day_of_week" binding:"min=0,max=6"`
	StartTime   TimeOfDay `json:"start_time"`
	EndTime     TimeOfDay `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

type ReplaceWorkingHoursRequest struct {
	Rules []WorkingHourRuleInput `json:"rules" binding:"required,len=7"`
}
