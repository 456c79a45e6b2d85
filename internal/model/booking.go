package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStepDoctor   = 1
	BookingStepSchedule = 2
	BookingStepConfirm  = 3
)

// BookingSession is the server-held state of the three-step appointment
// wizard. Step moves forward only when the listed selections are present;
// moving backward never clears them.
type BookingSession struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Step      int        `json:"step"`
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
	ServiceID *uuid.UUID `json:"service_id,omitempty"`
	Date      string     `json:"date,omitempty"`
	Time      string     `json:"time,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type SelectDoctorRequest struct {
	DoctorID string `json:"doctor_id" binding:"required,uuid"`
	// Empty service means "general consultation" and is stored as a null
	// service reference, not rejected.
	ServiceID string `json:"service_id" binding:"omitempty,uuid"`
}

type SelectScheduleRequest struct {
	Date  string `json:"date" binding:"required,calendardate"`
	Time  string `json:"time" binding:"required,clocktime"`
	Notes string `json:"notes"`
}

// BookingSummary is the read-only step-3 view: selections plus the
// patient's stored profile fields.
type BookingSummary struct {
	Session *BookingSession `json:"session"`
	Doctor  *Doctor         `json:"doctor"`
	Service *Service        `json:"service,omitempty"`
	Profile *Profile        `json:"profile"`
}
