package services

import (
	"context"
	"errors"
	"strings"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/adapters/persistence/repositories"
	"hdb-bto-portal/internal/core/domain"

	"gorm.io/gorm"
)

// Enquiry service errors
var (
	ErrEnquiryNotFound = errors.New("enquiry not found")
	ErrEnquiryAnswered = errors.New("enquiry has already been answered")
	ErrEmptyEnquiry    = errors.New("enquiry text cannot be empty")
)

// EnquiryService handles free-text enquiries about projects. Applicants can
// only edit or delete their own unanswered enquiries; staff of the project
// and its manager may reply.
type EnquiryService struct {
	enquiryRepo repositories.EnquiryRepository
	projectRepo repositories.ProjectRepository
	schedule    *ScheduleService
}

// NewEnquiryService creates a new enquiry service
func NewEnquiryService(enquiryRepo repositories.EnquiryRepository, projectRepo repositories.ProjectRepository, schedule *ScheduleService) *EnquiryService {
	return &EnquiryService{
		enquiryRepo: enquiryRepo,
		projectRepo: projectRepo,
		schedule:    schedule,
	}
}

// Submit files a new enquiry against a project
func (s *EnquiryService) Submit(ctx context.Context, userNRIC string, projectID int, text string) (*models.Enquiry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyEnquiry
	}
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	enquiry := &models.Enquiry{
		UserNRIC:  userNRIC,
		ProjectID: projectID,
		Text:      text,
	}
	if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

// Edit rewrites the text of the caller's own unanswered enquiry
func (s *EnquiryService) Edit(ctx context.Context, userNRIC string, enquiryID uint, text string) (*models.Enquiry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyEnquiry
	}

	enquiry, err := s.getOwned(ctx, userNRIC, enquiryID)
	if err != nil {
		return nil, err
	}
	if enquiry.Response != "" {
		return nil, ErrEnquiryAnswered
	}

	enquiry.Text = text
	if err := s.enquiryRepo.Save(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

// Delete removes the caller's own unanswered enquiry
func (s *EnquiryService) Delete(ctx context.Context, userNRIC string, enquiryID uint) error {
	enquiry, err := s.getOwned(ctx, userNRIC, enquiryID)
	if err != nil {
		return err
	}
	if enquiry.Response != "" {
		return ErrEnquiryAnswered
	}
	return s.enquiryRepo.Delete(ctx, enquiry.ID)
}

// Reply records a staff answer on an enquiry. The replier must manage the
// project or be an approved officer on it.
func (s *EnquiryService) Reply(ctx context.Context, staff *models.User, enquiryID uint, response string) (*models.Enquiry, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, ErrEmptyEnquiry
	}

	enquiry, err := s.enquiryRepo.GetByID(ctx, enquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnquiryNotFound
		}
		return nil, err
	}

	allowed, err := s.canHandle(ctx, staff, enquiry.ProjectID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	enquiry.Response = response
	if err := s.enquiryRepo.Save(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

// ListOwn lists the caller's enquiries
func (s *EnquiryService) ListOwn(ctx context.Context, userNRIC string) ([]*models.Enquiry, error) {
	return s.enquiryRepo.ListByUser(ctx, userNRIC)
}

// ListHandled lists enquiries for the projects the staff member covers. A
// manager covers every project; an officer covers assigned projects only.
func (s *EnquiryService) ListHandled(ctx context.Context, staff *models.User) ([]*models.Enquiry, error) {
	var projectIDs []int
	switch staff.Role {
	case domain.RoleManager:
		projects, err := s.projectRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
	case domain.RoleOfficer:
		assigned, err := s.schedule.AssignedProjects(ctx, staff.NRIC)
		if err != nil {
			return nil, err
		}
		for _, p := range assigned {
			projectIDs = append(projectIDs, p.ID)
		}
	default:
		return nil, domain.ErrForbidden
	}

	if len(projectIDs) == 0 {
		return []*models.Enquiry{}, nil
	}
	return s.enquiryRepo.ListByProjects(ctx, projectIDs)
}

func (s *EnquiryService) getOwned(ctx context.Context, userNRIC string, enquiryID uint) (*models.Enquiry, error) {
	enquiry, err := s.enquiryRepo.GetByID(ctx, enquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnquiryNotFound
		}
		return nil, err
	}
	if enquiry.UserNRIC != userNRIC {
		return nil, domain.ErrForbidden
	}
	return enquiry, nil
}

func (s *EnquiryService) canHandle(ctx context.Context, staff *models.User, projectID int) (bool, error) {
	switch staff.Role {
	case domain.RoleManager:
		project, err := s.projectRepo.GetByID(ctx, projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, ErrProjectNotFound
			}
			return false, err
		}
		return project.ManagerNRIC == staff.NRIC, nil
	case domain.RoleOfficer:
		return s.schedule.IsAssigned(ctx, staff.NRIC, projectID)
	default:
		return false, nil
	}
}
