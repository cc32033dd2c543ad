package repositories

import (
	"context"
	"strings"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByNRIC gets a user by NRIC
func (r *userRepository) GetByNRIC(ctx context.Context, nric string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("nric = ?", strings.ToUpper(nric)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByRole lists users holding the given role
func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Where("role = ?", role).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Save upserts the full user row, application state included
func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// ExistsByNRIC checks if an NRIC is already registered
func (r *userRepository) ExistsByNRIC(ctx context.Context, nric string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("nric = ?", strings.ToUpper(nric)).Count(&count).Error
	return count > 0, err
}

// CountBooked counts BOOKED applications for a project/flat-type pair
func (r *userRepository) CountBooked(ctx context.Context, projectID int, flatType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("applied_project_id = ?", projectID).
		Where("LOWER(applied_flat_type) = ?", strings.ToLower(strings.TrimSpace(flatType))).
		Where("status = ?", domain.StatusBooked).
		Count(&count).Error
	return count, err
}

// ListByAppliedProject lists users whose application targets the project
func (r *userRepository) ListByAppliedProject(ctx context.Context, projectID int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Where("applied_project_id = ?", projectID).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListByStatus lists users by application status
func (r *userRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
