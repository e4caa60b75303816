package service

import (
	"context"
	"testing"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
	"github.com/newgen/backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthServiceImpl, repository.UserRepository) {
	t.Helper()
	users := memory.New().Users()
	return NewAuthServiceWithCost(users, bcrypt.MinCost), users
}

func TestAuthService_EnsureAdminIsIdempotent(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
}

func TestAuthService_EnsureAdminValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.EnsureAdmin(ctx, " ", "pw")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)

	_, err = svc.EnsureAdmin(ctx, "admin", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	_, err := svc.EnsureAdmin(ctx, "admin", "s3cret")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, " admin ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	current, err := svc.CurrentUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, current.ID)
	assert.NotNil(t, current.LastLoginAt)
}

func TestAuthService_AuthenticateFailuresLookAlike(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	_, err := svc.EnsureAdmin(ctx, "admin", "s3cret")
	require.NoError(t, err)

	cases := []struct {
		name, username, password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "s3cret"},
		{"empty username", "", "s3cret"},
		{"empty password", "admin", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := svc.Authenticate(ctx, tc.username, tc.password)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_CurrentUserUnknown(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.CurrentUser(context.Background(), "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
