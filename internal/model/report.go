package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicalReport stores attachment metadata; file bytes live in the storage
// backend and only the public URL is recorded here.
type MedicalReport struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Title         string     `db:"title" json:"title"`
	FileName      string     `db:"file_name" json:"file_name"`
	FileType      *string    `db:"file_type" json:"file_type,omitempty"`
	FileURL       string     `db:"file_url" json:"file_url"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	UploadedAt    time.Time  `db:"uploaded_at" json:"uploaded_at"`
}
