package prescription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/repository"
	apperrors "github.com/dentique/clinic-api/pkg/errors"
)

type Service struct {
	repo            repository.PrescriptionRepository
	appointmentRepo repository.AppointmentRepository
}

func NewService(repo repository.PrescriptionRepository, appointmentRepo repository.AppointmentRepository) *Service {
	return &Service{repo: repo, appointmentRepo: appointmentRepo}
}

// Create issues a prescription against one of the doctor's own
// appointments. Patient and doctor are taken from the appointment, not the
// request.
func (s *Service) Create(ctx context.Context, doctorID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	appointmentID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid appointment id", err)
	}

	apt, err := s.appointmentRepo.Get(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}
	if apt.DoctorID != doctorID {
		return nil, apperrors.Forbidden("appointment belongs to another doctor")
	}

	if req.FollowUpDate != nil && *req.FollowUpDate != "" {
		if _, err := time.Parse(model.DateLayout, *req.FollowUpDate); err != nil {
			return nil, apperrors.BadRequest("invalid follow-up date", err)
		}
	}

	prescription := &model.Prescription{
		Base:          model.Base{ID: uuid.New()},
		AppointmentID: apt.ID,
		PatientID:     apt.PatientID,
		DoctorID:      apt.DoctorID,
		Medications:   req.Medications,
		Instructions:  req.Instructions,
		FollowUpDate:  req.FollowUpDate,
	}
	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PrescriptionDetail, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PrescriptionDetail, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}
