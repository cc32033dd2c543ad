package services

import (
	"context"
	"errors"
	"time"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/adapters/persistence/repositories"
	"hdb-bto-portal/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Application service errors
var (
	ErrProjectNotVisible = errors.New("project is not open to applicants")
	ErrProjectClosed     = errors.New("project application window is closed")
	ErrNotAssignedOfficer = errors.New("officer is not assigned to this project")
	ErrNotProjectManager  = errors.New("project is managed by another manager")
)

// ApplicationService is the application lifecycle state machine. Every
// operation re-reads the person's record from the store immediately before
// deciding, consults the eligibility rules and the schedule detector, mutates
// inventory only through the inventory service, and persists the full record
// or nothing. Every precondition violation is a recoverable, reported
// rejection.
type ApplicationService struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	inventory   *InventoryService
	schedule    *ScheduleService
	log         *zap.Logger
	now         func() time.Time
}

// NewApplicationService creates a new application service
func NewApplicationService(
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	inventory *InventoryService,
	schedule *ScheduleService,
	log *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		inventory:   inventory,
		schedule:    schedule,
		log:         log,
		now:         time.Now,
	}
}

// fetchUser re-reads the person's record from the store.
func (s *ApplicationService) fetchUser(ctx context.Context, nric string) (*models.User, error) {
	user, err := s.userRepo.GetByNRIC(ctx, nric)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// saveAndReload persists the user and reports the stored state back.
func (s *ApplicationService) saveAndReload(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return s.fetchUser(ctx, user.NRIC)
}

// Apply submits an application for a project's flat type. Managers may not
// apply; officers go through the conflict detector as applicants. No inventory
// is reserved here: reservation happens at booking.
func (s *ApplicationService) Apply(ctx context.Context, nric string, projectID int, flatType string) (*models.User, error) {
	user, err := s.fetchUser(ctx, nric)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleManager {
		return nil, domain.ErrForbidden
	}

	switch user.Application.Status {
	case domain.StatusSuccessful, domain.StatusBooked:
		return nil, domain.ErrAlreadyResolved
	case domain.StatusUnsuccessful:
		// An unsuccessful application does not block reapplication.
		user.Application.Reset()
	}
	if user.Application.Status.IsActive() {
		return nil, domain.ErrActiveApplication
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if !project.Visible {
		return nil, ErrProjectNotVisible
	}
	if !project.IsCurrentlyOpen(s.now()) {
		return nil, ErrProjectClosed
	}

	marital, ok := domain.ParseMaritalStatus(user.MaritalStatus)
	if !ok {
		return nil, domain.ErrInvalidMaritalStatus
	}
	if !domain.IsFlatTypeEligible(flatType, marital) {
		return nil, domain.ErrIneligibleFlatType
	}
	if !domain.MeetsAgeRequirement(user.Age, marital) {
		return nil, domain.ErrBelowMinimumAge
	}

	available, err := s.inventory.HasAvailableUnits(ctx, project, flatType)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrNoUnitsLeft
	}

	if user.Role == domain.RoleOfficer {
		// Dual-role view: the officer applies under the same identity.
		applicant := &models.OfficerApplicant{Officer: user}
		if err := s.schedule.CanApply(ctx, applicant.NRIC(), projectID); err != nil {
			return nil, err
		}
	}

	// Store the project's canonical label for the tier.
	canonical := project.Type1Desc
	if domain.FlatTypeEquals(project.Type2Desc, flatType) {
		canonical = project.Type2Desc
	}

	user.Application.AppliedProjectID = project.ID
	user.Application.AppliedFlatType = canonical
	user.Application.Status = domain.StatusPending

	saved, err := s.saveAndReload(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("application submitted",
		zap.String("nric", user.NRIC),
		zap.Int("project_id", project.ID),
		zap.String("flat_type", canonical))
	return saved, nil
}

// RequestWithdrawal moves an active application to PENDING_WITHDRAWAL,
// recording the prior status so a rejected withdrawal can restore it. A
// repeat call while a request is already awaiting decision reports that
// without mutating anything.
func (s *ApplicationService) RequestWithdrawal(ctx context.Context, nric string) (*models.User, error) {
	user, err := s.fetchUser(ctx, nric)
	if err != nil {
		return nil, err
	}

	status := user.Application.Status
	if status == domain.StatusPendingWithdrawal {
		return nil, domain.ErrWithdrawalPending
	}
	if !status.CanRequestWithdrawal() {
		return nil, domain.ErrNoActiveApplication
	}

	user.Application.PriorStatus = status
	user.Application.Status = domain.StatusPendingWithdrawal
	return s.saveAndReload(ctx, user)
}

// ApproveWithdrawal resets the application to the not-applied baseline. When
// the withdrawn application was BOOKED, the reserved unit is released first;
// the flat type is read before the reset wipes it.
func (s *ApplicationService) ApproveWithdrawal(ctx context.Context, managerNRIC, nric string) (*models.User, error) {
	user, err := s.fetchUser(ctx, nric)
	if err != nil {
		return nil, err
	}
	if user.Application.Status != domain.StatusPendingWithdrawal {
		return nil, domain.ErrNoPendingWithdrawal
	}
	if err := s.requireManagerOf(ctx, managerNRIC, user.Application.AppliedProjectID); err != nil {
		return nil, err
	}

	projectID := user.Application.AppliedProjectID
	flatType := user.Application.AppliedFlatType
	wasBooked := user.Application.PriorStatus == domain.StatusBooked

	// Persist the reset before touching inventory: a failed save must leave
	// the unit reserved, or a retried approval would release it twice.
	user.Application.Reset()
	saved, err := s.saveAndReload(ctx, user)
	if err != nil {
		return nil, err
	}

	if wasBooked {
		if err := s.inventory.Release(ctx, projectID, flatType); err != nil {
			return nil, err
		}
	}
	s.log.Info("withdrawal approved",
		zap.String("nric", user.NRIC),
		zap.Int("project_id", projectID),
		zap.Bool("unit_released", wasBooked))
	return saved, nil
}

// RejectWithdrawal restores the status held before the withdrawal request.
func (s *ApplicationService) RejectWithdrawal(ctx context.Context, managerNRIC, nric string) (*models.User, error) {
	user, err := s.fetchUser(ctx, nric)
	if err != nil {
		return nil, err
	}
	if user.Application.Status != domain.StatusPendingWithdrawal {
		return nil, domain.ErrNoPendingWithdrawal
	}
	if err := s.requireManagerOf(ctx, managerNRIC, user.Application.AppliedProjectID); err != nil {
		return nil, err
	}

	prior := user.Application.PriorStatus
	if prior == "" {
		// Rows written before prior-status tracking fall back to PENDING.
		prior = domain.StatusPending
	}
	user.Application.Status = prior
	user.Application.PriorStatus = ""
	return s.saveAndReload(ctx, user)
}

// Approve marks a pending application successful.
func (s *ApplicationService) Approve(ctx context.Context, managerNRIC, nric string) (*models.User, error) {
	user, err := s.fetchUser(ctx, nric)
	if err != nil {
		return nil, err
	}
	if user.Application.Status != domain.StatusPending {
		return nil, domain.ErrApplicationNotPending
	}
	if err := s.requireManagerOf(ctx, managerNRIC, user.Application.AppliedProjectID); err != nil {
		return nil, err
	}

	user.Application.Status = domain.StatusSuccessful
	saved, err := s.saveAndReload(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("application approved", zap.String("nric", user.NRIC))
	return saved, nil
}

// Reject marks a pending application unsuccessful and clears the applied
// project and flat type.
func (s *ApplicationService) Reject(ctx context.Context, managerNRIC, nric string) (*models.User, error) {
	user, err := s.fetchUser(ctx, nric)
	if err != nil {
		return nil, err
	}
	if user.Application.Status != domain.StatusPending {
		return nil, domain.ErrApplicationNotPending
	}
	if err := s.requireManagerOf(ctx, managerNRIC, user.Application.AppliedProjectID); err != nil {
		return nil, err
	}

	user.Application.Status = domain.StatusUnsuccessful
	user.Application.AppliedProjectID = domain.NoAppliedProject
	user.Application.AppliedFlatType = ""
	saved, err := s.saveAndReload(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("application rejected", zap.String("nric", user.NRIC))
	return saved, nil
}

// Book reserves a unit for a successful application and marks it booked. On
// exhaustion the reservation is declined and the status stays SUCCESSFUL:
// the applicant can retry another time or the manager can reject instead.
func (s *ApplicationService) Book(ctx context.Context, officerNRIC, nric string) (*models.User, error) {
	user, err := s.fetchUser(ctx, nric)
	if err != nil {
		return nil, err
	}
	if user.Application.Status != domain.StatusSuccessful {
		return nil, domain.ErrApplicationNotSuccessful
	}

	assigned, err := s.schedule.IsAssigned(ctx, officerNRIC, user.Application.AppliedProjectID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotAssignedOfficer
	}

	if err := s.inventory.Reserve(ctx, user.Application.AppliedProjectID, user.Application.AppliedFlatType); err != nil {
		return nil, err
	}

	user.Application.Status = domain.StatusBooked
	saved, err := s.saveAndReload(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("flat booked",
		zap.String("nric", user.NRIC),
		zap.Int("project_id", user.Application.AppliedProjectID),
		zap.String("flat_type", user.Application.AppliedFlatType))
	return saved, nil
}

// ListByStatus lists applications by status for coordinator review.
func (s *ApplicationService) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*models.User, error) {
	return s.userRepo.ListByStatus(ctx, status)
}

// ListByProject lists applications targeting a project.
func (s *ApplicationService) ListByProject(ctx context.Context, projectID int) ([]*models.User, error) {
	return s.userRepo.ListByAppliedProject(ctx, projectID)
}

// requireManagerOf verifies the acting manager owns the applied project.
func (s *ApplicationService) requireManagerOf(ctx context.Context, managerNRIC string, projectID int) error {
	if projectID == domain.NoAppliedProject {
		return nil
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	if project.ManagerNRIC != managerNRIC {
		return ErrNotProjectManager
	}
	return nil
}
