package model

import (
	"time"

	"github.com/google/uuid"
)

// ClinicInfo is the single-row record behind the public site's about and
// contact sections.
type ClinicInfo struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	AboutUs      *string   `db:"about_us" json:"about_us,omitempty"`
	Mission      *string   `db:"mission" json:"mission,omitempty"`
	Address      *string   `db:"address" json:"address,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Email        *string   `db:"email" json:"email,omitempty"`
	OpeningHours *string   `db:"opening_hours" json:"opening_hours,omitempty"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type UpdateClinicInfoRequest struct {
	Name         *string `json:"name"`
	AboutUs      *string `json:"about_us"`
	Mission      *string `json:"mission"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	OpeningHours *string `json:"opening_hours"`
}
