package report

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/repository"
	apperrors "github.com/dentique/clinic-api/pkg/errors"
	"github.com/dentique/clinic-api/pkg/storage"
)

type Service struct {
	repo  repository.ReportRepository
	store storage.Storage
}

func NewService(repo repository.ReportRepository, store storage.Storage) *Service {
	return &Service{repo: repo, store: store}
}

type UploadRequest struct {
	PatientID     uuid.UUID
	DoctorID      uuid.UUID
	AppointmentID *uuid.UUID
	Title         string
	FileName      string
	ContentType   string
	Notes         *string
}

// Upload stores the file bytes first and records metadata only after the
// write succeeds, so a storage failure leaves no dangling row.
func (s *Service) Upload(ctx context.Context, req *UploadRequest, file io.Reader) (*model.MedicalReport, error) {
	if req.Title == "" || req.FileName == "" {
		return nil, apperrors.BadRequest("title and file name are required", nil)
	}

	id := uuid.New()
	path := fmt.Sprintf("reports/%s/%s%s", req.PatientID, id, filepath.Ext(req.FileName))

	url, err := s.store.Upload(ctx, path, req.ContentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store report file: %w", err)
	}

	report := &model.MedicalReport{
		ID:            id,
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		AppointmentID: req.AppointmentID,
		Title:         req.Title,
		FileName:      req.FileName,
		FileURL:       url,
		Notes:         req.Notes,
	}
	if req.ContentType != "" {
		ct := req.ContentType
		report.FileType = &ct
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.MedicalReport, error) {
	report, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("medical report", err)
	}
	return report, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalReport, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.MedicalReport, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}
