package service_test

import (
	"context"
	"testing"

	"inventra/internal/config"
	"inventra/internal/dto"
	"inventra/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAuthSvc() (service.AuthService, *stubUserRepo) {
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	users := newStubUserRepo()
	return service.NewAuthService(users, &stubCompanyRepo{}, cfg), users
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:       "owner@example.com",
		Password:    "s3cret-pass",
		CompanyName: "Acme Trading",
		PhoneNumber: "5551234567",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := buildAuthSvc()

	user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.Equal(t, "Acme Trading", user.CompanyName)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, users := buildAuthSvc()
	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	for _, u := range users.users {
		u.Active = false
	}

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-pass",
	})
	require.Error(t, err)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
}
