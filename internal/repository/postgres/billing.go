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

const billingColumns = `id, patient_id, doctor_id, appointment_id, prescription_id,
	   report_id, service_type, amount, description, status, paid_at, created_at`

func (r *billingRepository) Create(ctx context.Context, record *model.BillingRecord) error {
	query := `
		INSERT INTO billing (
			id, patient_id, doctor_id, appointment_id, prescription_id,
			report_id, service_type, amount, description, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	record.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PatientID,
		record.DoctorID,
		record.AppointmentID,
		record.PrescriptionID,
		record.ReportID,
		record.ServiceType,
		record.Amount,
		record.Description,
		record.Status,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create billing record: %w", err)
	}
	return nil
}

func (r *billingRepository) Get(ctx context.Context, id uuid.UUID) (*model.BillingRecord, error) {
	query := `SELECT ` + billingColumns + ` FROM billing WHERE id = $1`

	var record model.BillingRecord
	err := r.db.GetContext(ctx, &record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("billing record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get billing record: %w", err)
	}
	return &record, nil
}

func (r *billingRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE billing
		SET status = $1, paid_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		model.BillingStatusPaid, time.Now(), id, model.BillingStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark billing record paid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("billing record not found or already paid")
	}

	return nil
}

func (r *billingRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.BillingRecord, error) {
	query := `SELECT ` + billingColumns + ` FROM billing
		WHERE patient_id = $1 ORDER BY created_at DESC`

	var records []*model.BillingRecord
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient billing: %w", err)
	}
	return records, nil
}

func (r *billingRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.BillingRecord, error) {
	query := `SELECT ` + billingColumns + ` FROM billing
		WHERE doctor_id = $1 ORDER BY created_at DESC`

	var records []*model.BillingRecord
	if err := r.db.SelectContext(ctx, &records, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor billing: %w", err)
	}
	return records, nil
}
