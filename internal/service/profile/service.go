package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/repository"
	apperrors "github.com/dentique/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.ProfileRepository
}

func NewService(repo repository.ProfileRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("profile", err)
	}
	return profile, nil
}

// Update applies only the fields present in the request. Date of birth must
// parse as a calendar date when set.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("profile", err)
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth != "" {
			if _, err := time.Parse(model.DateLayout, *req.DateOfBirth); err != nil {
				return nil, apperrors.BadRequest("invalid date of birth", err)
			}
		}
		profile.DateOfBirth = req.DateOfBirth
	}
	if req.Address != nil {
		profile.Address = req.Address
	}
	if req.EmergencyContact != nil {
		profile.EmergencyContact = req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		profile.EmergencyPhone = req.EmergencyPhone
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
