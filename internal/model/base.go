package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

const (
	// DateLayout is the wire format for calendar dates (appointment_date,
	// date_of_birth, event_date, follow_up_date).
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format for clock times (appointment_time).
	TimeLayout = "15:04"
)
