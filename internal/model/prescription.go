package model

import "github.com/google/uuid"

// Prescription is issued by a doctor against an existing appointment.
type Prescription struct {
	Base
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Medications   string    `db:"medications" json:"medications"`
	Instructions  *string   `db:"instructions" json:"instructions,omitempty"`
	FollowUpDate  *string   `db:"follow_up_date" json:"follow_up_date,omitempty"`
}

type PrescriptionDetail struct {
	Prescription
	PatientName     string `db:"patient_name" json:"patient_name"`
	DoctorName      string `db:"doctor_name" json:"doctor_name"`
	AppointmentDate string `db:"appointment_date" json:"appointment_date"`
}

type CreatePrescriptionRequest struct {
	AppointmentID string  `json:"appointment_id" binding:"required,uuid"`
	Medications   string  `json:"medications" binding:"required"`
	Instructions  *string `json:"instructions"`
	FollowUpDate  *string `json:"follow_up_date"`
}
