package repositories

import (
	"context"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"
)

// UserRepository is the person/application store. Save is an idempotent upsert
// of the full user row, application state included; the engine never writes a
// partial record.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByNRIC(ctx context.Context, nric string) (*models.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*models.User, error)
	Save(ctx context.Context, user *models.User) error
	ExistsByNRIC(ctx context.Context, nric string) (bool, error)
	// CountBooked derives the booked count for a project/flat-type pair by
	// scanning applicant records, not a separate ledger.
	CountBooked(ctx context.Context, projectID int, flatType string) (int64, error)
	ListByAppliedProject(ctx context.Context, projectID int) ([]*models.User, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*models.User, error)
}

// ProjectRepository is the project store. IDs are app-managed and dense.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id int) (*models.Project, error)
	GetAll(ctx context.Context) ([]*models.Project, error)
	ListVisible(ctx context.Context) ([]*models.Project, error)
	ListByManager(ctx context.Context, managerNRIC string) ([]*models.Project, error)
	Save(ctx context.Context, project *models.Project) error
	NextID(ctx context.Context) (int, error)
	// ReserveUnit atomically decrements the available count for the flat type,
	// declining with domain.ErrNoUnitsLeft when none remain.
	ReserveUnit(ctx context.Context, projectID int, flatType string) error
	// ReleaseUnit restores one unit for the flat type.
	ReleaseUnit(ctx context.Context, projectID int, flatType string) error
	// DeleteAndRenumber removes the project and densely reassigns surviving
	// project IDs to [1..N], remapping registrations, enquiries and applicant
	// references in the same transaction.
	DeleteAndRenumber(ctx context.Context, projectID int) error
}

// RegistrationRepository stores officer project registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.OfficerRegistration) error
	GetByID(ctx context.Context, id uint) (*models.OfficerRegistration, error)
	GetByOfficerAndProject(ctx context.Context, officerNRIC string, projectID int) (*models.OfficerRegistration, error)
	ListByOfficer(ctx context.Context, officerNRIC string, status domain.RegistrationStatus) ([]*models.OfficerRegistration, error)
	ListAllByOfficer(ctx context.Context, officerNRIC string) ([]*models.OfficerRegistration, error)
	ListByProject(ctx context.Context, projectID int, status domain.RegistrationStatus) ([]*models.OfficerRegistration, error)
	ListAllByProject(ctx context.Context, projectID int) ([]*models.OfficerRegistration, error)
	CountByProject(ctx context.Context, projectID int, statuses ...domain.RegistrationStatus) (int64, error)
	Save(ctx context.Context, reg *models.OfficerRegistration) error
}

// EnquiryRepository stores project enquiries.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	GetByID(ctx context.Context, id uint) (*models.Enquiry, error)
	ListByUser(ctx context.Context, userNRIC string) ([]*models.Enquiry, error)
	ListByProjects(ctx context.Context, projectIDs []int) ([]*models.Enquiry, error)
	Save(ctx context.Context, enquiry *models.Enquiry) error
	Delete(ctx context.Context, id uint) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
	CountActiveByUserID(ctx context.Context, userID uint) (int64, error)
}
