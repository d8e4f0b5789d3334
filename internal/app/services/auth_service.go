package services

import (
	"context"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
	"github.com/eduinsight/eduinsight/internal/pkg/auth"
)

// userStore looks up staff accounts for login.
type userStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService handles staff authentication
type AuthService struct {
	users userStore
	jwt   *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(users userStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
	}
}

// Login verifies staff credentials and issues an access token. Bad email and
// bad password both come back as invalid credentials so the response does not
// reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		FullName:  user.FullName,
	}, nil
}
