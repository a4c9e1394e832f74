package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepvio_backend/internal/auth"
	"prepvio_backend/internal/config"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/services/dto"
)

func TestGetProfile_BuiltInAdmin(t *testing.T) {
	// The built-in admin identity never exists in the users table, so
	// the lookup must not reach the store at all.
	svc := NewAuthService(newFakeUserRepo(), newFakePaymentRepo(), nil, nil)

	resp, err := svc.GetProfile(auth.AdminSubject)
	require.NoError(t, err)

	assert.Equal(t, auth.AdminSubject, resp.ID)
	assert.Equal(t, string(models.UserRoleAdmin), resp.Role)
	assert.Equal(t, string(models.UserStatusActive), resp.Status)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakePaymentRepo(), nil, nil)

	_, err := svc.GetProfile("nope")
	require.Error(t, err)
}

func TestGetProfile_RegularUser(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakePaymentRepo(), nil, nil)

	created, err := svc.Register(&dto.RegisterRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)

	resp, err := svc.GetProfile(created.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", resp.Email)
}
