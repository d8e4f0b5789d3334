package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
	"github.com/eduinsight/eduinsight/internal/pkg/auth"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
}

func TestLogin(t *testing.T) {
	hashed, err := auth.HashPassword("Admin123!")
	require.NoError(t, err)

	users := &fakeUserStore{users: map[string]*models.User{
		"staff@example.com": {
			ID:       1,
			Email:    "staff@example.com",
			Password: hashed,
			FullName: "Staff Member",
			IsActive: true,
		},
	}}
	svc := NewAuthService(users, testJWTService())

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "staff@example.com",
		Password: "Admin123!",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "Staff Member", resp.FullName)

	claims, err := testJWTService().ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "staff@example.com", claims.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hashed, err := auth.HashPassword("Admin123!")
	require.NoError(t, err)

	users := &fakeUserStore{users: map[string]*models.User{
		"staff@example.com": {ID: 1, Email: "staff@example.com", Password: hashed, IsActive: true},
		"gone@example.com":  {ID: 2, Email: "gone@example.com", Password: hashed, IsActive: false},
	}}
	svc := NewAuthService(users, testJWTService())

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "staff@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "gone@example.com", Password: "Admin123!"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
