package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/repository"
	apperrors "github.com/dentique/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}
	return apt, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentDetail, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	if filters != nil && filters.Status != "" && !filters.Status.Valid() {
		return nil, apperrors.BadRequest("invalid appointment status", nil)
	}
	return s.repo.ListByDoctor(ctx, doctorID, filters)
}

// CountForDoctorOnDate backs the doctor dashboard's "today" figure.
func (s *Service) CountForDoctorOnDate(ctx context.Context, doctorID uuid.UUID, date string) (int, error) {
	return s.repo.CountForDoctorOnDate(ctx, doctorID, date)
}

// UpdateStatus changes only the status field. Date, time and notes are
// immutable after booking; a patient reschedules by cancelling and booking
// again.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.BadRequest("invalid appointment status", nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}
	return s.repo.Get(ctx, id)
}

// Cancel is the patient-facing status change. Ownership is checked so one
// patient cannot cancel another's appointment.
func (s *Service) Cancel(ctx context.Context, id, patientID uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}
	if apt.PatientID != patientID {
		return nil, apperrors.Forbidden("appointment belongs to another patient")
	}
	if apt.Status == model.AppointmentStatusCompleted || apt.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.BadRequest("appointment can no longer be cancelled", nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, model.AppointmentStatusCancelled); err != nil {
		return nil, err
	}
	apt.Status = model.AppointmentStatusCancelled
	return apt, nil
}
