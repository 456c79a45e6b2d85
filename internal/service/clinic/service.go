package clinic

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

const (
	cacheKeyInfo     = "content:clinic_info"
	cacheKeyServices = "content:services"
	cacheKeyEvents   = "content:events"
)

// Service serves the public content surface: clinic info, the service
// catalog and events. Reads go through the content cache; every write
// invalidates the affected key.
type Service struct {
	infoRepo    repository.ClinicInfoRepository
	serviceRepo repository.ServiceRepository
	eventRepo   repository.EventRepository
	cache       cache.Cache
	ttl         time.Duration
	metrics     *metrics.Metrics
}

func NewService(infoRepo repository.ClinicInfoRepository, serviceRepo repository.ServiceRepository, eventRepo repository.EventRepository, c cache.Cache, ttl time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		infoRepo:    infoRepo,
		serviceRepo: serviceRepo,
		eventRepo:   eventRepo,
		cache:       c,
		ttl:         ttl,
		metrics:     m,
	}
}

func (s *Service) Info(ctx context.Context) (*model.ClinicInfo, error) {
	var info model.ClinicInfo
	if err := s.cache.Get(ctx, cacheKeyInfo, &info); err == nil {
		s.metrics.CacheHits.WithLabelValues(cacheKeyInfo).Inc()
		return &info, nil
	}
	s.metrics.CacheMisses.WithLabelValues(cacheKeyInfo).Inc()

	fetched, err := s.infoRepo.Get(ctx)
	if err != nil {
		return nil, apperrors.NotFound("clinic info", err)
	}
	s.cache.Set(ctx, cacheKeyInfo, fetched, s.ttl)
	return fetched, nil
}

func (s *Service) UpdateInfo(ctx context.Context, req *model.UpdateClinicInfoRequest) (*model.ClinicInfo, error) {
	info, err := s.infoRepo.Get(ctx)
	if err != nil {
		return nil, apperrors.NotFound("clinic info", err)
	}

	if req.Name != nil {
		info.Name = *req.Name
	}
	if req.AboutUs != nil {
		info.AboutUs = req.AboutUs
	}
	if req.Mission != nil {
		info.Mission = req.Mission
	}
	if req.Address != nil {
		info.Address = req.Address
	}
	if req.Phone != nil {
		info.Phone = req.Phone
	}
	if req.Email != nil {
		info.Email = req.Email
	}
	if req.OpeningHours != nil {
		info.OpeningHours = req.OpeningHours
	}

	if err := s.infoRepo.Update(ctx, info); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cacheKeyInfo)
	return info, nil
}

// ListServices returns the catalog. Public callers see active services
// only; the doctor console passes activeOnly=false to manage the full set.
func (s *Service) ListServices(ctx context.Context, activeOnly bool) ([]*model.Service, error) {
	if activeOnly {
		var services []*model.Service
		if err := s.cache.Get(ctx, cacheKeyServices, &services); err == nil {
			s.metrics.CacheHits.WithLabelValues(cacheKeyServices).Inc()
			return services, nil
		}
		s.metrics.CacheMisses.WithLabelValues(cacheKeyServices).Inc()
	}

	services, err := s.serviceRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		s.cache.Set(ctx, cacheKeyServices, services, s.ttl)
	}
	return services, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.serviceRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("service", err)
	}
	return svc, nil
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		Base:            model.Base{ID: uuid.New()},
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cacheKeyServices)
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.serviceRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("service", err)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cacheKeyServices)
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("service", err)
	}
	s.cache.Delete(ctx, cacheKeyServices)
	return nil
}

func (s *Service) ListEvents(ctx context.Context, publicOnly bool) ([]*model.Event, error) {
	if publicOnly {
		var events []*model.Event
		if err := s.cache.Get(ctx, cacheKeyEvents, &events); err == nil {
			s.metrics.CacheHits.WithLabelValues(cacheKeyEvents).Inc()
			return events, nil
		}
		s.metrics.CacheMisses.WithLabelValues(cacheKeyEvents).Inc()
	}

	events, err := s.eventRepo.List(ctx, publicOnly)
	if err != nil {
		return nil, err
	}
	if publicOnly {
		s.cache.Set(ctx, cacheKeyEvents, events, s.ttl)
	}
	return events, nil
}

func (s *Service) CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if _, err := time.Parse(model.DateLayout, req.EventDate); err != nil {
		return nil, apperrors.BadRequest("invalid event date", err)
	}

	event := &model.Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		EventTime:   req.EventTime,
		Location:    req.Location,
		IsPublic:    req.IsPublic,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cacheKeyEvents)
	return event, nil
}

func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("event", err)
	}
	s.cache.Delete(ctx, cacheKeyEvents)
	return nil
}
