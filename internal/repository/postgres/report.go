package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/model"
)

const reportColumns = `id, patient_id, doctor_id, appointment_id, title,
	   file_name, file_type, file_url, notes, uploaded_at`

func (r *reportRepository) Create(ctx context.Context, report *model.MedicalReport) error {
	query := `
		INSERT INTO medical_reports (
			id, patient_id, doctor_id, appointment_id, title,
			file_name, file_type, file_url, notes, uploaded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	report.UploadedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.PatientID,
		report.DoctorID,
		report.AppointmentID,
		report.Title,
		report.FileName,
		report.FileType,
		report.FileURL,
		report.Notes,
		report.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medical report: %w", err)
	}
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalReport, error) {
	query := `SELECT ` + reportColumns + ` FROM medical_reports WHERE id = $1`

	var report model.MedicalReport
	err := r.db.GetContext(ctx, &report, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("medical report not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medical report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalReport, error) {
	query := `SELECT ` + reportColumns + ` FROM medical_reports
		WHERE patient_id = $1 ORDER BY uploaded_at DESC`

	var reports []*model.MedicalReport
	if err := r.db.SelectContext(ctx, &reports, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.MedicalReport, error) {
	query := `SELECT ` + reportColumns + ` FROM medical_reports
		WHERE doctor_id = $1 ORDER BY uploaded_at DESC`

	var reports []*model.MedicalReport
	if err := r.db.SelectContext(ctx, &reports, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor reports: %w", err)
	}
	return reports, nil
}
