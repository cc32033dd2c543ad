package repositories

import (
	"context"

	"hdb-bto-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// enquiryRepository implements EnquiryRepository interface
type enquiryRepository struct {
	db *gorm.DB
}

// NewEnquiryRepository creates a new enquiry repository
func NewEnquiryRepository(db *gorm.DB) EnquiryRepository {
	return &enquiryRepository{db: db}
}

// Create creates a new enquiry
func (r *enquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

// GetByID gets an enquiry by ID
func (r *enquiryRepository) GetByID(ctx context.Context, id uint) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&enquiry).Error
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// ListByUser lists enquiries submitted by a user
func (r *enquiryRepository) ListByUser(ctx context.Context, userNRIC string) ([]*models.Enquiry, error) {
	var enquiries []*models.Enquiry
	err := r.db.WithContext(ctx).Where("user_nric = ?", userNRIC).Order("created_at DESC").Find(&enquiries).Error
	if err != nil {
		return nil, err
	}
	return enquiries, nil
}

// ListByProjects lists enquiries targeting any of the given projects
func (r *enquiryRepository) ListByProjects(ctx context.Context, projectIDs []int) ([]*models.Enquiry, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var enquiries []*models.Enquiry
	err := r.db.WithContext(ctx).Where("project_id IN ?", projectIDs).Order("created_at DESC").Find(&enquiries).Error
	if err != nil {
		return nil, err
	}
	return enquiries, nil
}

// Save upserts an enquiry
func (r *enquiryRepository) Save(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Save(enquiry).Error
}

// Delete removes an enquiry
func (r *enquiryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Enquiry{}, id).Error
}
