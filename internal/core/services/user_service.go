package services

import (
	"context"
	"errors"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/adapters/persistence/repositories"
	"hdb-bto-portal/internal/core/domain"
	"hdb-bto-portal/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrWrongPassword   = errors.New("current password is incorrect")
	ErrPasswordTooWeak = errors.New("password does not meet the minimum length")
)

// ChangePasswordInput represents a password change request
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserService handles user profile operations
type UserService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, refreshTokenRepo repositories.RefreshTokenRepository) *UserService {
	return &UserService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// GetProfile gets a user's profile by NRIC
func (s *UserService) GetProfile(ctx context.Context, nric string) (*models.User, error) {
	user, err := s.userRepo.GetByNRIC(ctx, nric)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword updates the user's password and revokes every session.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !password.Verify(input.CurrentPassword, user.Password) {
		return ErrWrongPassword
	}
	if !password.Valid(input.NewPassword) {
		return ErrPasswordTooWeak
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

// ListByRole lists users holding a role
func (s *UserService) ListByRole(ctx context.Context, role domain.Role) ([]*models.User, error) {
	return s.userRepo.ListByRole(ctx, role)
}
