package model

import "github.com/lib/pq"

// Doctor is read-mostly reference data. AvailableDays and AvailableHours
// are advisory display text shown during booking; they are not enforced
// against chosen appointment slots.
type Doctor struct {
	Base
	Name            string         `db:"name" json:"name"`
	Specialization  string         `db:"specialization" json:"specialization"`
	Qualification   *string        `db:"qualification" json:"qualification,omitempty"`
	ExperienceYears *int           `db:"experience_years" json:"experience_years,omitempty"`
	AvailableDays   pq.StringArray `db:"available_days" json:"available_days"`
	AvailableHours  *string        `db:"available_hours" json:"available_hours,omitempty"`
	ImageURL        *string        `db:"image_url" json:"image_url,omitempty"`
	Email           string         `db:"email" json:"email"`
}

type CreateDoctorRequest struct {
	Name            string   `json:"name" binding:"required"`
	Specialization  string   `json:"specialization" binding:"required"`
	Qualification   *string  `json:"qualification"`
	ExperienceYears *int     `json:"experience_years"`
	AvailableDays   []string `json:"available_days"`
	AvailableHours  *string  `json:"available_hours"`
	ImageURL        *string  `json:"image_url"`
	Email           string   `json:"email" binding:"required,email"`
}

type UpdateDoctorRequest struct {
	Name            *string  `json:"name"`
	Specialization  *string  `json:"specialization"`
	Qualification   *string  `json:"qualification"`
	ExperienceYears *int     `json:"experience_years"`
	AvailableDays   []string `json:"available_days"`
	AvailableHours  *string  `json:"available_hours"`
	ImageURL        *string  `json:"image_url"`
}
