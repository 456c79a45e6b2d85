package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentique/clinic-api/internal/email"
	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/pkg/auth"
	"github.com/dentique/clinic-api/pkg/security"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	byID    map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*model.User{},
		byID:    map[uuid.UUID]*model.User{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error { return nil }

type fakeProfileRepo struct {
	created []*model.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	f.created = append(f.created, p)
	return nil
}
func (f *fakeProfileRepo) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return nil, fmt.Errorf("profile not found")
}
func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	for _, p := range f.created {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile not found")
}
func (f *fakeProfileRepo) Update(ctx context.Context, p *model.Profile) error { return nil }
func (f *fakeProfileRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakeProfileRepo) List(ctx context.Context) ([]*model.Profile, error) { return nil, nil }

func newTestService() (*Service, *fakeUserRepo, *fakeProfileRepo) {
	users := newFakeUserRepo()
	profiles := &fakeProfileRepo{}
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
	svc := NewService(users, profiles, jwtSvc, security.NewBcryptHasher(4), email.NewNoopService())
	return svc, users, profiles
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	svc, users, profiles := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "Jane@Example.com",
		Password: "supersecret",
		FullName: "Jane Doe",
		Phone:    "+15550100",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, model.UserRolePatient, user.Role)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	require.Len(t, profiles.created, 1)
	profile := profiles.created[0]
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "Jane Doe", profile.FullName)
	require.NotNil(t, profile.Phone)
	assert.Equal(t, "+15550100", *profile.Phone)
	require.NotNil(t, user.Phone)
	assert.Equal(t, "+15550100", *user.Phone)

	_, ok := users.byEmail["jane@example.com"]
	assert.True(t, ok)
}

func TestRegisterWithoutPhone(t *testing.T) {
	svc, _, profiles := newTestService()

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	assert.Nil(t, user.Phone)
	require.Len(t, profiles.created, 1)
	assert.Nil(t, profiles.created[0].Phone)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := &model.RegisterRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
		FullName: "Jane Doe",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrongpassword",
	})
	require.Error(t, err)
}

func TestRefresh(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(ctx, tokens.AccessToken)
	require.Error(t, err)
}
