package model

// Service is a bookable clinic service. Inactive services are hidden from
// the public catalog and the booking wizard.
type Service struct {
	Base
	Name            string  `db:"name" json:"name"`
	Description     *string `db:"description" json:"description,omitempty"`
	Price           float64 `db:"price" json:"price"`
	DurationMinutes int     `db:"duration_minutes" json:"duration_minutes"`
	IsActive        bool    `db:"is_active" json:"is_active"`
}

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	Price           float64 `json:"price" binding:"required,gte=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"duration_minutes"`
	IsActive        *bool    `json:"is_active"`
}
