package doctor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/repository"
	"github.com/dentique/clinic-api/pkg/cache"
	apperrors "github.com/dentique/clinic-api/pkg/errors"
	"github.com/dentique/clinic-api/pkg/metrics"
)

const cacheKeyDoctors = "content:doctors"

type Service struct {
	repo    repository.DoctorRepository
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewService(repo repository.DoctorRepository, c cache.Cache, ttl time.Duration, m *metrics.Metrics) *Service {
	return &Service{repo: repo, cache: c, ttl: ttl, metrics: m}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		Base:            model.Base{ID: uuid.New()},
		Name:            req.Name,
		Specialization:  req.Specialization,
		Qualification:   req.Qualification,
		ExperienceYears: req.ExperienceYears,
		AvailableDays:   req.AvailableDays,
		AvailableHours:  req.AvailableHours,
		ImageURL:        req.ImageURL,
		Email:           req.Email,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cacheKeyDoctors)
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("doctor", err)
	}
	return doctor, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	doctor, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NotFound("doctor", err)
	}
	return doctor, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("doctor", err)
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Qualification != nil {
		doctor.Qualification = req.Qualification
	}
	if req.ExperienceYears != nil {
		doctor.ExperienceYears = req.ExperienceYears
	}
	if req.AvailableDays != nil {
		doctor.AvailableDays = req.AvailableDays
	}
	if req.AvailableHours != nil {
		doctor.AvailableHours = req.AvailableHours
	}
	if req.ImageURL != nil {
		doctor.ImageURL = req.ImageURL
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cacheKeyDoctors)
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("doctor", err)
	}
	s.cache.Delete(ctx, cacheKeyDoctors)
	return nil
}

// List serves the public doctor directory through the content cache.
// Writes above invalidate the key so the directory never serves stale
// entries past one mutation.
func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	if err := s.cache.Get(ctx, cacheKeyDoctors, &doctors); err == nil {
		s.metrics.CacheHits.WithLabelValues(cacheKeyDoctors).Inc()
		return doctors, nil
	}
	s.metrics.CacheMisses.WithLabelValues(cacheKeyDoctors).Inc()

	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cacheKeyDoctors, doctors, s.ttl)
	return doctors, nil
}
