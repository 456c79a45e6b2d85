package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dentique/clinic-api/internal/model"
)

// The clinic_info table holds a single row.

func (r *clinicInfoRepository) Get(ctx context.Context) (*model.ClinicInfo, error) {
	query := `
		SELECT id, name, about_us, mission, address, phone, email,
			   opening_hours, updated_at
		FROM clinic_info
		LIMIT 1
	`
	var info model.ClinicInfo
	err := r.db.GetContext(ctx, &info, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("clinic info not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic info: %w", err)
	}
	return &info, nil
}

func (r *clinicInfoRepository) Update(ctx context.Context, info *model.ClinicInfo) error {
	query := `
		UPDATE clinic_info
		SET name = $1, about_us = $2, mission = $3, address = $4,
			phone = $5, email = $6, opening_hours = $7, updated_at = $8
		WHERE id = $9
	`
	info.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		info.Name,
		info.AboutUs,
		info.Mission,
		info.Address,
		info.Phone,
		info.Email,
		info.OpeningHours,
		info.UpdatedAt,
		info.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinic info: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("clinic info not found")
	}

	return nil
}
