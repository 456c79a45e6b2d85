package model

import (
	"time"

	"github.com/google/uuid"
)

// Event is a clinic-wide announcement, not tied to any patient.
type Event struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	EventDate   string    `db:"event_date" json:"event_date"`
	EventTime   *string   `db:"event_time" json:"event_time,omitempty"`
	Location    *string   `db:"location" json:"location,omitempty"`
	IsPublic    bool      `db:"is_public" json:"is_public"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	EventDate   string  `json:"event_date" binding:"required,calendardate"`
	EventTime   *string `json:"event_time"`
	Location    *string `json:"location"`
	IsPublic    bool    `json:"is_public"`
}
