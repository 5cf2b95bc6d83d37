// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokosini/storefront/internal/config"
	"github.com/tokosini/storefront/internal/models"
)

func authTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, authTestConfig())

	resp, err := svc.Register(&RegisterRequest{
		Username: "newuser",
		Email:    "newuser@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, models.UserRoleCustomer, resp.User.Role)

	login, err := svc.Login(&LoginRequest{
		Email:    "newuser@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotNil(t, login.User)
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, authTestConfig())

	req := &RegisterRequest{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "supersecret1",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrConflict)

	// Same username, different email
	_, err = svc.Register(&RegisterRequest{
		Username: "taken",
		Email:    "other@example.com",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, authTestConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "victim",
		Email:    "victim@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{
		Email:    "victim@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, authTestConfig())

	resp, err := svc.Register(&RegisterRequest{
		Username: "original",
		Email:    "original@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(resp.User.ID, &UpdateProfileRequest{
		Username: "renamed",
		Email:    "renamed@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "renamed@example.com", updated.Email)

	// Login works against the new email afterwards.
	_, err = svc.Login(&LoginRequest{
		Email:    "renamed@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)
}

func TestUpdateProfileRejectsTakenIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, authTestConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "holder",
		Email:    "holder@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	resp, err := svc.Register(&RegisterRequest{
		Username: "mover",
		Email:    "mover@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(resp.User.ID, &UpdateProfileRequest{
		Username: "holder",
		Email:    "mover@example.com",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.UpdateProfile(resp.User.ID, &UpdateProfileRequest{
		Username: "mover",
		Email:    "holder@example.com",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// Keeping your own identity is not a collision.
	_, err = svc.UpdateProfile(resp.User.ID, &UpdateProfileRequest{
		Username: "mover",
		Email:    "mover@example.com",
	})
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, authTestConfig())

	resp, err := svc.Register(&RegisterRequest{
		Username: "rotator",
		Email:    "rotator@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "wrongcurrent",
		NewPassword:     "freshsecret1",
	})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "supersecret1",
		NewPassword:     "freshsecret1",
	}))

	_, err = svc.Login(&LoginRequest{
		Email:    "rotator@example.com",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(&LoginRequest{
		Email:    "rotator@example.com",
		Password: "freshsecret1",
	})
	require.NoError(t, err)
}

func TestChangePasswordValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, authTestConfig())

	resp, err := svc.Register(&RegisterRequest{
		Username: "weakling",
		Email:    "weakling@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "supersecret1",
		NewPassword:     "short",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, authTestConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "x",
		Email:    "bad",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrValidation)
}
