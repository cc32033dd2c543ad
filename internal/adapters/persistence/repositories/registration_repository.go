package repositories

import (
	"context"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"

	"gorm.io/gorm"
)

// registrationRepository implements RegistrationRepository interface
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create creates a new officer registration
func (r *registrationRepository) Create(ctx context.Context, reg *models.OfficerRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

// GetByID gets a registration by ID
func (r *registrationRepository) GetByID(ctx context.Context, id uint) (*models.OfficerRegistration, error) {
	var reg models.OfficerRegistration
	if err := r.db.WithContext(ctx).First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetByOfficerAndProject gets a registration for an officer/project pair
func (r *registrationRepository) GetByOfficerAndProject(ctx context.Context, officerNRIC string, projectID int) (*models.OfficerRegistration, error) {
	var reg models.OfficerRegistration
	err := r.db.WithContext(ctx).
		Where("officer_nric = ?", officerNRIC).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListByOfficer lists an officer's registrations with the given status
func (r *registrationRepository) ListByOfficer(ctx context.Context, officerNRIC string, status domain.RegistrationStatus) ([]*models.OfficerRegistration, error) {
	var regs []*models.OfficerRegistration
	err := r.db.WithContext(ctx).
		Where("officer_nric = ?", officerNRIC).
		Where("status = ?", status).
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// ListByProject lists a project's registrations with the given status
func (r *registrationRepository) ListByProject(ctx context.Context, projectID int, status domain.RegistrationStatus) ([]*models.OfficerRegistration, error) {
	var regs []*models.OfficerRegistration
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Where("status = ?", status).
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// ListAllByOfficer lists an officer's registrations regardless of status
func (r *registrationRepository) ListAllByOfficer(ctx context.Context, officerNRIC string) ([]*models.OfficerRegistration, error) {
	var regs []*models.OfficerRegistration
	err := r.db.WithContext(ctx).
		Where("officer_nric = ?", officerNRIC).
		Order("created_at DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// ListAllByProject lists a project's registrations regardless of status
func (r *registrationRepository) ListAllByProject(ctx context.Context, projectID int) ([]*models.OfficerRegistration, error) {
	var regs []*models.OfficerRegistration
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// CountByProject counts a project's registrations across the given statuses
func (r *registrationRepository) CountByProject(ctx context.Context, projectID int, statuses ...domain.RegistrationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OfficerRegistration{}).
		Where("project_id = ?", projectID).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

// Save upserts a registration
func (r *registrationRepository) Save(ctx context.Context, reg *models.OfficerRegistration) error {
	return r.db.WithContext(ctx).Save(reg).Error
}
