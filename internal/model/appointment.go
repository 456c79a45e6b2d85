package model

import "github.com/google/uuid"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment stores date and time as wire strings ("2006-01-02", "15:04"),
// matching the slot-based granularity of the booking flow. A nil ServiceID
// means a general consultation.
type Appointment struct {
	Base
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	ServiceID       *uuid.UUID        `db:"service_id" json:"service_id"`
	AppointmentDate string            `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string            `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           *string           `db:"notes" json:"notes,omitempty"`
}

// AppointmentDetail is an appointment joined with patient and service
// display fields for the doctor console and patient dashboard.
type AppointmentDetail struct {
	Appointment
	PatientName     string  `db:"patient_name" json:"patient_name"`
	PatientPhone    *string `db:"patient_phone" json:"patient_phone,omitempty"`
	DoctorName      string  `db:"doctor_name" json:"doctor_name"`
	ServiceName     *string `db:"service_name" json:"service_name,omitempty"`
	ServiceDuration *int    `db:"service_duration" json:"service_duration,omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Status    AppointmentStatus
	Date      string
}
