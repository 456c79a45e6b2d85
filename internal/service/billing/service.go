package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/repository"
	apperrors "github.com/dentique/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.BillingRepository
}

func NewService(repo repository.BillingRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, doctorID uuid.UUID, req *model.CreateBillingRequest) (*model.BillingRecord, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient id", err)
	}

	record := &model.BillingRecord{
		ID:          uuid.New(),
		PatientID:   patientID,
		DoctorID:    doctorID,
		ServiceType: req.ServiceType,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      model.BillingStatusPending,
	}

	if record.AppointmentID, err = parseOptionalID(req.AppointmentID); err != nil {
		return nil, apperrors.BadRequest("invalid appointment id", err)
	}
	if record.PrescriptionID, err = parseOptionalID(req.PrescriptionID); err != nil {
		return nil, apperrors.BadRequest("invalid prescription id", err)
	}
	if record.ReportID, err = parseOptionalID(req.ReportID); err != nil {
		return nil, apperrors.BadRequest("invalid report id", err)
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*model.BillingRecord, error) {
	if err := s.repo.MarkPaid(ctx, id); err != nil {
		return nil, apperrors.BadRequest("billing record not found or already paid", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.BillingRecord, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.BillingRecord, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// Summary aggregates a doctor's records. Revenue counts paid records only.
func (s *Service) Summary(ctx context.Context, doctorID uuid.UUID) (*model.BillingSummary, error) {
	records, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	summary := &model.BillingSummary{}
	for _, r := range records {
		switch r.Status {
		case model.BillingStatusPaid:
			summary.TotalRevenue += r.Amount
			summary.PaidCount++
		case model.BillingStatusPending:
			summary.PendingAmount += r.Amount
			summary.PendingCount++
		}
	}
	return summary, nil
}

func parseOptionalID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
