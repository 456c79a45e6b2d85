package model

import "github.com/google/uuid"

// Profile is the patient record linked to an authenticated user account.
// One row per patient user, created automatically at sign-up.
type Profile struct {
	Base
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
	FullName         string    `db:"full_name" json:"full_name"`
	Phone            *string   `db:"phone" json:"phone,omitempty"`
	DateOfBirth      *string   `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Address          *string   `db:"address" json:"address,omitempty"`
	EmergencyContact *string   `db:"emergency_contact" json:"emergency_contact,omitempty"`
	EmergencyPhone   *string   `db:"emergency_phone" json:"emergency_phone,omitempty"`
}

type UpdateProfileRequest struct {
	FullName         *string `json:"full_name"`
	Phone            *string `json:"phone"`
	DateOfBirth      *string `json:"date_of_birth"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
}
