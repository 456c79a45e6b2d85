package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentique/clinic-api/internal/model"
)

func testUser() *model.User {
	return &model.User{
		Base:  model.Base{ID: uuid.New()},
		Email: "jane@example.com",
		Role:  model.UserRolePatient,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Expiry:        time.Hour,
	})
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.UserRolePatient, claims.Role)
}

func TestRefreshTokenUsesOwnSecret(t *testing.T) {
	svc := NewJWTService(Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
	})
	user := testUser()

	refresh, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)

	// The two token kinds are not interchangeable.
	_, err = svc.ValidateToken(refresh)
	require.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService(Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Expiry:        -time.Minute,
	})

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestTamperedToken(t *testing.T) {
	svc := NewJWTService(Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Expiry:        time.Hour,
	})

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	other := NewJWTService(Config{
		Secret:        "different-secret",
		RefreshSecret: "refresh-secret",
		Expiry:        time.Hour,
	})
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}
