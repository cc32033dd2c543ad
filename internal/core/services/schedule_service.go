package services

import (
	"context"
	"errors"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/adapters/persistence/repositories"
	"hdb-bto-portal/internal/core/domain"

	"gorm.io/gorm"
)

// ScheduleService is the scheduling-conflict detector. A person may not hold
// two time-overlapping commitments when at least one is an officer assignment:
// an officer must be free to administer a project during its live window
// without simultaneously being a competing applicant or officer elsewhere.
// Overlap is checked pairwise against the entire existing commitment set; a
// single overlap anywhere vetoes the candidate.
type ScheduleService struct {
	projectRepo      repositories.ProjectRepository
	userRepo         repositories.UserRepository
	registrationRepo repositories.RegistrationRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	registrationRepo repositories.RegistrationRepository,
) *ScheduleService {
	return &ScheduleService{
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
	}
}

// registrationWindows resolves the project windows behind an officer's
// registrations with the given status, skipping the excluded registration.
func (s *ScheduleService) registrationWindows(ctx context.Context, officerNRIC string, status domain.RegistrationStatus, excludeRegID uint) ([]domain.DateWindow, error) {
	regs, err := s.registrationRepo.ListByOfficer(ctx, officerNRIC, status)
	if err != nil {
		return nil, err
	}
	windows := make([]domain.DateWindow, 0, len(regs))
	for _, reg := range regs {
		if reg.ID == excludeRegID {
			continue
		}
		project, err := s.projectRepo.GetByID(ctx, reg.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		windows = append(windows, project.Window())
	}
	return windows, nil
}

// IsAssigned reports whether the officer holds an approved registration for
// the project.
func (s *ScheduleService) IsAssigned(ctx context.Context, officerNRIC string, projectID int) (bool, error) {
	reg, err := s.registrationRepo.GetByOfficerAndProject(ctx, officerNRIC, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return reg.Status == domain.RegistrationApproved, nil
}

// CanAssignOfficer decides whether the officer may take on the candidate
// project. The candidate window is vetted against approved assignments,
// pending registrations, and any active applicant commitment the officer
// holds. Returns nil when admissible; the returned error is a declined
// result, never a fault.
func (s *ScheduleService) CanAssignOfficer(ctx context.Context, officerNRIC string, projectID int) error {
	return s.canAssign(ctx, officerNRIC, projectID, 0)
}

// CanApproveRegistration re-runs the assignment checks for a pending
// registration at decision time. The registration under decision is excluded
// so it cannot veto itself.
func (s *ScheduleService) CanApproveRegistration(ctx context.Context, registration *models.OfficerRegistration) error {
	return s.canAssign(ctx, registration.OfficerNRIC, registration.ProjectID, registration.ID)
}

func (s *ScheduleService) canAssign(ctx context.Context, officerNRIC string, projectID int, excludeRegID uint) error {
	candidate, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if reg, err := s.registrationRepo.GetByOfficerAndProject(ctx, officerNRIC, projectID); err == nil && reg.ID != excludeRegID {
		switch reg.Status {
		case domain.RegistrationApproved:
			return domain.ErrAlreadyAssigned
		case domain.RegistrationPending:
			return domain.ErrPendingRegistration
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	window := candidate.Window()

	for _, status := range []domain.RegistrationStatus{domain.RegistrationApproved, domain.RegistrationPending} {
		windows, err := s.registrationWindows(ctx, officerNRIC, status, excludeRegID)
		if err != nil {
			return err
		}
		for _, w := range windows {
			if window.Overlaps(w) {
				return domain.ErrScheduleConflict
			}
		}
	}

	// An officer with a live application is an applicant commitment too.
	officer, err := s.userRepo.GetByNRIC(ctx, officerNRIC)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	state := officer.Application
	if state.Status.IsActive() && state.AppliedProjectID != domain.NoAppliedProject {
		applied, err := s.projectRepo.GetByID(ctx, state.AppliedProjectID)
		if err == nil && window.Overlaps(applied.Window()) {
			return domain.ErrScheduleConflict
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	return nil
}

// CanApply decides whether an officer acting as an applicant may apply for
// the candidate project: not while assigned to it, not with a pending
// registration for it, and not while its window overlaps any of the officer's
// assigned windows.
func (s *ScheduleService) CanApply(ctx context.Context, officerNRIC string, projectID int) error {
	candidate, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if reg, err := s.registrationRepo.GetByOfficerAndProject(ctx, officerNRIC, projectID); err == nil {
		switch reg.Status {
		case domain.RegistrationApproved:
			return domain.ErrAlreadyAssigned
		case domain.RegistrationPending:
			return domain.ErrPendingRegistration
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	windows, err := s.registrationWindows(ctx, officerNRIC, domain.RegistrationApproved, 0)
	if err != nil {
		return err
	}
	for _, w := range windows {
		if candidate.Window().Overlaps(w) {
			return domain.ErrScheduleConflict
		}
	}

	return nil
}

// ManagerWindowClear checks that no project under the manager's ownership,
// other than excludeProjectID, overlaps the given window: one project under
// active management at a time.
func (s *ScheduleService) ManagerWindowClear(ctx context.Context, managerNRIC string, window domain.DateWindow, excludeProjectID int) error {
	managed, err := s.projectRepo.ListByManager(ctx, managerNRIC)
	if err != nil {
		return err
	}
	for _, project := range managed {
		if project.ID == excludeProjectID {
			continue
		}
		if window.Overlaps(project.Window()) {
			return domain.ErrScheduleConflict
		}
	}
	return nil
}

// AssignedProjects lists the projects the officer holds approved
// registrations for.
func (s *ScheduleService) AssignedProjects(ctx context.Context, officerNRIC string) ([]*models.Project, error) {
	regs, err := s.registrationRepo.ListByOfficer(ctx, officerNRIC, domain.RegistrationApproved)
	if err != nil {
		return nil, err
	}
	projects := make([]*models.Project, 0, len(regs))
	for _, reg := range regs {
		project, err := s.projectRepo.GetByID(ctx, reg.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}
