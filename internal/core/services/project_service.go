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

// Project service errors
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidWindow     = errors.New("closing date cannot be before opening date")
	ErrManagerWindowBusy = errors.New("manager already handles a project in this period")
	ErrInvalidSlotCount  = errors.New("officer slots must be between 1 and 10")
)

// CreateProjectInput represents a new listing submitted by a manager
type CreateProjectInput struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Neighborhood string `json:"neighborhood" validate:"required,min=2,max=100"`
	Type1Desc    string `json:"type1_desc" validate:"required"`
	Type1Units   int    `json:"type1_units" validate:"min=0"`
	Type1Price   int    `json:"type1_price" validate:"min=0"`
	Type2Desc    string `json:"type2_desc" validate:"required"`
	Type2Units   int    `json:"type2_units" validate:"min=0"`
	Type2Price   int    `json:"type2_price" validate:"min=0"`
	OpeningDate  string `json:"opening_date" validate:"required"`
	ClosingDate  string `json:"closing_date" validate:"required"`
	OfficerSlots int    `json:"officer_slots" validate:"required"`
}

// UpdateProjectInput carries the editable fields of a listing
type UpdateProjectInput struct {
	Name         *string `json:"name,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
	Type1Price   *int    `json:"type1_price,omitempty"`
	Type2Price   *int    `json:"type2_price,omitempty"`
	OpeningDate  *string `json:"opening_date,omitempty"`
	ClosingDate  *string `json:"closing_date,omitempty"`
	OfficerSlots *int    `json:"officer_slots,omitempty"`
}

// ProjectService manages housing project listings
type ProjectService struct {
	projectRepo repositories.ProjectRepository
	schedule    *ScheduleService
	log         *zap.Logger
	now         func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repositories.ProjectRepository, schedule *ScheduleService, log *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		schedule:    schedule,
		log:         log,
		now:         time.Now,
	}
}

// Create opens a new listing under the acting manager. The manager must not
// already handle a project whose application window overlaps the new one.
func (s *ProjectService) Create(ctx context.Context, managerNRIC string, input CreateProjectInput) (*models.Project, error) {
	opening, err := domain.ParseDate(input.OpeningDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	closing, err := domain.ParseDate(input.ClosingDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	window, err := applicationWindow(opening, closing)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	if input.OfficerSlots < 1 || input.OfficerSlots > 10 {
		return nil, ErrInvalidSlotCount
	}

	if err := s.schedule.ManagerWindowClear(ctx, managerNRIC, window, 0); err != nil {
		if errors.Is(err, domain.ErrScheduleConflict) {
			return nil, ErrManagerWindowBusy
		}
		return nil, err
	}

	id, err := s.projectRepo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:                 id,
		Name:               input.Name,
		Neighborhood:       input.Neighborhood,
		Type1Desc:          input.Type1Desc,
		Type1Units:         input.Type1Units,
		OriginalType1Units: input.Type1Units,
		Type1Price:         input.Type1Price,
		Type2Desc:          input.Type2Desc,
		Type2Units:         input.Type2Units,
		OriginalType2Units: input.Type2Units,
		Type2Price:         input.Type2Price,
		OpeningDate:        opening,
		ClosingDate:        closing,
		ManagerNRIC:        managerNRIC,
		OfficerSlots:       input.OfficerSlots,
		Visible:            true,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	s.log.Info("project created",
		zap.Int("project_id", project.ID),
		zap.String("name", project.Name),
		zap.String("manager", managerNRIC))
	return project, nil
}

// Update edits a listing's mutable fields. Unit counts are not editable here:
// they move only through reservations and releases.
func (s *ProjectService) Update(ctx context.Context, managerNRIC string, projectID int, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.getOwned(ctx, managerNRIC, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Neighborhood != nil {
		project.Neighborhood = *input.Neighborhood
	}
	if input.Type1Price != nil {
		project.Type1Price = *input.Type1Price
	}
	if input.Type2Price != nil {
		project.Type2Price = *input.Type2Price
	}

	opening, closing := project.OpeningDate, project.ClosingDate
	if input.OpeningDate != nil {
		if opening, err = domain.ParseDate(*input.OpeningDate); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if input.ClosingDate != nil {
		if closing, err = domain.ParseDate(*input.ClosingDate); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if input.OpeningDate != nil || input.ClosingDate != nil {
		window, err := applicationWindow(opening, closing)
		if err != nil {
			return nil, ErrInvalidWindow
		}
		if err := s.schedule.ManagerWindowClear(ctx, managerNRIC, window, projectID); err != nil {
			if errors.Is(err, domain.ErrScheduleConflict) {
				return nil, ErrManagerWindowBusy
			}
			return nil, err
		}
		project.OpeningDate = opening
		project.ClosingDate = closing
	}

	if input.OfficerSlots != nil {
		if *input.OfficerSlots < 1 || *input.OfficerSlots > 10 {
			return nil, ErrInvalidSlotCount
		}
		project.OfficerSlots = *input.OfficerSlots
	}

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ToggleVisibility flips a listing between open and hidden
func (s *ProjectService) ToggleVisibility(ctx context.Context, managerNRIC string, projectID int) (*models.Project, error) {
	project, err := s.getOwned(ctx, managerNRIC, projectID)
	if err != nil {
		return nil, err
	}
	project.Visible = !project.Visible
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	s.log.Info("project visibility toggled",
		zap.Int("project_id", project.ID),
		zap.Bool("visible", project.Visible))
	return project, nil
}

// Delete removes a listing. Surviving listings are renumbered to a dense
// 1..N sequence and every stored reference follows the new numbering.
func (s *ProjectService) Delete(ctx context.Context, managerNRIC string, projectID int) error {
	if _, err := s.getOwned(ctx, managerNRIC, projectID); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteAndRenumber(ctx, projectID); err != nil {
		return err
	}
	s.log.Info("project deleted", zap.Int("project_id", projectID))
	return nil
}

// GetByID fetches a single listing
func (s *ProjectService) GetByID(ctx context.Context, projectID int) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// ListAll lists every listing regardless of visibility
func (s *ProjectService) ListAll(ctx context.Context) ([]*models.Project, error) {
	return s.projectRepo.GetAll(ctx)
}

// ListByManager lists the listings a manager handles
func (s *ProjectService) ListByManager(ctx context.Context, managerNRIC string) ([]*models.Project, error) {
	return s.projectRepo.ListByManager(ctx, managerNRIC)
}

// ListOpenFor lists visible listings carrying at least one flat type the
// viewer is eligible for. An applicant with an active application also sees
// the applied project even if it has since been hidden.
func (s *ProjectService) ListOpenFor(ctx context.Context, viewer *models.User) ([]*models.Project, error) {
	visible, err := s.projectRepo.ListVisible(ctx)
	if err != nil {
		return nil, err
	}

	marital, ok := domain.ParseMaritalStatus(viewer.MaritalStatus)
	if !ok {
		return nil, domain.ErrInvalidMaritalStatus
	}

	var out []*models.Project
	seen := make(map[int]bool)
	for _, p := range visible {
		if s.anyTierEligible(p, viewer.Age, marital) {
			out = append(out, p)
			seen[p.ID] = true
		}
	}

	applied := viewer.Application.AppliedProjectID
	if viewer.Application.Status.IsActive() && applied != domain.NoAppliedProject && !seen[applied] {
		p, err := s.projectRepo.GetByID(ctx, applied)
		if err == nil {
			out = append(out, p)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return out, nil
}

func (s *ProjectService) anyTierEligible(p *models.Project, age int, marital domain.MaritalStatus) bool {
	for _, tier := range []string{p.Type1Desc, p.Type2Desc} {
		if tier == "" {
			continue
		}
		if domain.IsFlatTypeEligible(tier, marital) && domain.MeetsAgeRequirement(age, marital) {
			return true
		}
	}
	return false
}

// applicationWindow validates a submitted window. Closing must come strictly
// after opening; stored records may still carry single-day windows.
func applicationWindow(opening, closing time.Time) (domain.DateWindow, error) {
	if !closing.After(opening) {
		return domain.DateWindow{}, ErrInvalidWindow
	}
	return domain.NewWindow(opening, closing)
}

func (s *ProjectService) getOwned(ctx context.Context, managerNRIC string, projectID int) (*models.Project, error) {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ManagerNRIC != managerNRIC {
		return nil, ErrNotProjectManager
	}
	return project, nil
}
