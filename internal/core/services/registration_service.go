package services

import (
	"context"
	"errors"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/adapters/persistence/repositories"
	"hdb-bto-portal/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Registration service errors
var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrOwnApplication       = errors.New("officer has applied for this project as an applicant")
	ErrRegistrationDecided  = errors.New("registration has already been decided")
)

// RegistrationService handles officers volunteering to staff projects.
// Conflicts are checked both at submission and again at approval, because
// the detector's answer can change while a request sits pending.
type RegistrationService struct {
	registrationRepo repositories.RegistrationRepository
	projectRepo      repositories.ProjectRepository
	userRepo         repositories.UserRepository
	schedule         *ScheduleService
	log              *zap.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	schedule *ScheduleService,
	log *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		schedule:         schedule,
		log:              log,
	}
}

// Register submits an officer's request to staff a project
func (s *RegistrationService) Register(ctx context.Context, officerNRIC string, projectID int) (*models.OfficerRegistration, error) {
	officer, err := s.userRepo.GetByNRIC(ctx, officerNRIC)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if officer.Role != domain.RoleOfficer {
		return nil, domain.ErrForbidden
	}
	if officer.Application.Status.IsActive() && officer.Application.AppliedProjectID == projectID {
		return nil, ErrOwnApplication
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	// Pending requests count against capacity too, so a queue cannot form
	// behind a project that can never take them.
	taken, err := s.registrationRepo.CountByProject(ctx, projectID,
		domain.RegistrationPending, domain.RegistrationApproved)
	if err != nil {
		return nil, err
	}
	if int(taken) >= project.OfficerSlots {
		return nil, domain.ErrNoOfficerSlots
	}

	if err := s.schedule.CanAssignOfficer(ctx, officerNRIC, projectID); err != nil {
		return nil, err
	}

	registration := &models.OfficerRegistration{
		OfficerNRIC: officerNRIC,
		ProjectID:   projectID,
		Status:      domain.RegistrationPending,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		return nil, err
	}
	s.log.Info("officer registration submitted",
		zap.String("officer", officerNRIC),
		zap.Int("project_id", projectID))
	return registration, nil
}

// Approve grants a pending registration. The project must still have a free
// officer slot and the officer's schedule must still be clear.
func (s *RegistrationService) Approve(ctx context.Context, managerNRIC string, registrationID uint) (*models.OfficerRegistration, error) {
	registration, project, err := s.getDecidable(ctx, managerNRIC, registrationID)
	if err != nil {
		return nil, err
	}

	approved, err := s.registrationRepo.CountByProject(ctx, registration.ProjectID, domain.RegistrationApproved)
	if err != nil {
		return nil, err
	}
	if int(approved) >= project.OfficerSlots {
		return nil, domain.ErrNoOfficerSlots
	}

	if err := s.schedule.CanApproveRegistration(ctx, registration); err != nil {
		return nil, err
	}

	registration.Status = domain.RegistrationApproved
	if err := s.registrationRepo.Save(ctx, registration); err != nil {
		return nil, err
	}
	s.log.Info("officer registration approved",
		zap.String("officer", registration.OfficerNRIC),
		zap.Int("project_id", registration.ProjectID))
	return registration, nil
}

// Reject declines a pending registration
func (s *RegistrationService) Reject(ctx context.Context, managerNRIC string, registrationID uint) (*models.OfficerRegistration, error) {
	registration, _, err := s.getDecidable(ctx, managerNRIC, registrationID)
	if err != nil {
		return nil, err
	}
	registration.Status = domain.RegistrationRejected
	if err := s.registrationRepo.Save(ctx, registration); err != nil {
		return nil, err
	}
	return registration, nil
}

// ListByOfficer lists an officer's own registrations
func (s *RegistrationService) ListByOfficer(ctx context.Context, officerNRIC string) ([]*models.OfficerRegistration, error) {
	return s.registrationRepo.ListAllByOfficer(ctx, officerNRIC)
}

// ListByProject lists registrations targeting a project
func (s *RegistrationService) ListByProject(ctx context.Context, projectID int) ([]*models.OfficerRegistration, error) {
	return s.registrationRepo.ListAllByProject(ctx, projectID)
}

func (s *RegistrationService) getDecidable(ctx context.Context, managerNRIC string, registrationID uint) (*models.OfficerRegistration, *models.Project, error) {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRegistrationNotFound
		}
		return nil, nil, err
	}
	if registration.Status != domain.RegistrationPending {
		return nil, nil, ErrRegistrationDecided
	}

	project, err := s.projectRepo.GetByID(ctx, registration.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, err
	}
	if project.ManagerNRIC != managerNRIC {
		return nil, nil, ErrNotProjectManager
	}
	return registration, project, nil
}
