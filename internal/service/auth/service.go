package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dentique/clinic-api/internal/email"
	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/repository"
	"github.com/dentique/clinic-api/pkg/auth"
	apperrors "github.com/dentique/clinic-api/pkg/errors"
	"github.com/dentique/clinic-api/pkg/security"
)

type Service struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	emailSvc    email.Service
}

func NewService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service) *Service {
	return &Service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
		emailSvc:    emailSvc,
	}
}

// Register creates a patient account and its profile row in one step. The
// profile carries the sign-up name and phone so the booking flow can read
// them without a separate onboarding step.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	addr := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, _ := s.userRepo.GetByEmail(ctx, addr); existing != nil {
		return nil, apperrors.BadRequest("email already registered", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	var phone *string
	if req.Phone != "" {
		p := req.Phone
		phone = &p
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        addr,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        phone,
		Role:         model.UserRolePatient,
		Status:       model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &model.Profile{
		Base:     model.Base{ID: uuid.New()},
		UserID:   user.ID,
		FullName: req.FullName,
		Phone:    phone,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := s.emailSvc.SendWelcome(ctx, user.Email, user.FullName); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	if user.Status != model.UserStatusActive {
		return nil, apperrors.Forbidden("account is inactive")
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to record last login")
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	if user.Status != model.UserStatusActive {
		return nil, apperrors.Forbidden("account is inactive")
	}

	return s.issueTokens(user)
}

func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("user", err)
	}
	return user, nil
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtSvc.AccessExpiry().Seconds()),
	}, nil
}
