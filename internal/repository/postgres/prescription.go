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

const prescriptionDetailColumns = `
	pr.id, pr.appointment_id, pr.patient_id, pr.doctor_id,
	pr.medications, pr.instructions, pr.follow_up_date,
	pr.created_at, pr.updated_at,
	p.full_name AS patient_name,
	d.name AS doctor_name,
	a.appointment_date`

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, appointment_id, patient_id, doctor_id,
			medications, instructions, follow_up_date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	prescription.CreatedAt = time.Now()
	prescription.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		prescription.ID,
		prescription.AppointmentID,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.Medications,
		prescription.Instructions,
		prescription.FollowUpDate,
		prescription.CreatedAt,
		prescription.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	query := `
		SELECT id, appointment_id, patient_id, doctor_id,
			   medications, instructions, follow_up_date,
			   created_at, updated_at
		FROM prescriptions
		WHERE id = $1
	`
	var prescription model.Prescription
	err := r.db.GetContext(ctx, &prescription, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prescription not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PrescriptionDetail, error) {
	query := `
		SELECT ` + prescriptionDetailColumns + `
		FROM prescriptions pr
		JOIN profiles p ON p.id = pr.patient_id
		JOIN doctors d ON d.id = pr.doctor_id
		JOIN appointments a ON a.id = pr.appointment_id
		WHERE pr.patient_id = $1
		ORDER BY pr.created_at DESC
	`
	var prescriptions []*model.PrescriptionDetail
	if err := r.db.SelectContext(ctx, &prescriptions, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PrescriptionDetail, error) {
	query := `
		SELECT ` + prescriptionDetailColumns + `
		FROM prescriptions pr
		JOIN profiles p ON p.id = pr.patient_id
		JOIN doctors d ON d.id = pr.doctor_id
		JOIN appointments a ON a.id = pr.appointment_id
		WHERE pr.doctor_id = $1
		ORDER BY pr.created_at DESC
	`
	var prescriptions []*model.PrescriptionDetail
	if err := r.db.SelectContext(ctx, &prescriptions, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor prescriptions: %w", err)
	}
	return prescriptions, nil
}
