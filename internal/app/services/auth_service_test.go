package services

import (
	"context"
	"testing"
	"time"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(users *fakeUsers) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key-with-enough-length",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "talentquest-test",
	})
	return NewAuthService(users, jwtService, testLogger), jwtService
}

func TestCreateUserAndLogin(t *testing.T) {
	users := newFakeUsers()
	svc, jwtService := newTestAuthService(users)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "  Staff@Example.com ", "Gate Staff", "harbor2026", models.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", user.Email)
	assert.NotEqual(t, "harbor2026", user.PasswordHash)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "staff@example.com", Password: "harbor2026"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, 3600, resp.Token.ExpiresIn)
	assert.Equal(t, "staff", resp.User.Role)
	assert.Equal(t, []int64{user.ID}, users.logins)

	claims, err := jwtService.ValidateToken(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	me, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gate Staff", me.FullName)
}

func TestLogin_Failures(t *testing.T) {
	users := newFakeUsers()
	svc, _ := newTestAuthService(users)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "admin@example.com", "Admin", "harbor2026", models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: "wrong-pass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "harbor2026"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	user.IsActive = false
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: "harbor2026"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	_, err = svc.Me(ctx, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUsers())
	ctx := context.Background()

	cases := map[string]struct {
		email, name, password string
		role                  models.RoleType
	}{
		"bad email":      {"not-an-email", "A", "harbor2026", models.RoleStaff},
		"missing name":   {"a@example.com", " ", "harbor2026", models.RoleStaff},
		"unknown role":   {"a@example.com", "A", "harbor2026", "owner"},
		"short password": {"a@example.com", "A", "ab1", models.RoleStaff},
		"no digit":       {"a@example.com", "A", "harborharbor", models.RoleStaff},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tc.email, tc.name, tc.password, tc.role)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	_, err := svc.CreateUser(ctx, "dup@example.com", "A", "harbor2026", models.RoleStaff)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "dup@example.com", "B", "harbor2026", models.RoleStaff)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestEnsureAdmin_OnlyOnce(t *testing.T) {
	users := newFakeUsers()
	svc, _ := newTestAuthService(users)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "admin@example.com", "Admin", "harbor2026")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "other@example.com", "Other", "harbor2026")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, users.byEmail, 1)
}
