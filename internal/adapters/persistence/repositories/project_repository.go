package repositories

import (
	"context"
	"errors"
	"sort"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"

	"gorm.io/gorm"
)

// projectRepository implements ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID gets a project by ID
func (r *projectRepository) GetByID(ctx context.Context, id int) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetAll lists all projects ordered by ID
func (r *projectRepository) GetAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Order("id").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListVisible lists applicant-facing projects
func (r *projectRepository) ListVisible(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Where("visible = ?", true).Order("id").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByManager lists projects owned by the manager
func (r *projectRepository) ListByManager(ctx context.Context, managerNRIC string) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Where("manager_nric = ?", managerNRIC).Order("id").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Save upserts the full project row keyed by project ID
func (r *projectRepository) Save(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// NextID returns the next dense project ID. Since IDs always occupy [1..N],
// the next ID is the current count plus one.
func (r *projectRepository) NextID(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}

// unitsColumn resolves which units column the flat type maps to.
func (r *projectRepository) unitsColumn(ctx context.Context, projectID int, flatType string) (string, error) {
	project, err := r.GetByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	switch {
	case domain.FlatTypeEquals(project.Type1Desc, flatType):
		return "type1_units", nil
	case domain.FlatTypeEquals(project.Type2Desc, flatType):
		return "type2_units", nil
	default:
		return "", domain.ErrUnknownFlatType
	}
}

// ReserveUnit decrements the available count by one iff it is still positive.
// The compare-and-decrement runs as a single statement, closing the race two
// bookings would otherwise have on the last unit.
func (r *projectRepository) ReserveUnit(ctx context.Context, projectID int, flatType string) error {
	column, err := r.unitsColumn(ctx, projectID, flatType)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND "+column+" > 0", projectID).
		UpdateColumn(column, gorm.Expr(column+" - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoUnitsLeft
	}
	return nil
}

// ReleaseUnit restores one unit for the flat type
func (r *projectRepository) ReleaseUnit(ctx context.Context, projectID int, flatType string) error {
	column, err := r.unitsColumn(ctx, projectID, flatType)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

// DeleteAndRenumber removes the project and reassigns surviving IDs densely.
// Registrations and enquiries follow their project to its new ID; rows bound
// to the deleted project are removed, and applications targeting it reset to
// the not-applied baseline. All of it commits or none of it does.
func (r *projectRepository) DeleteAndRenumber(ctx context.Context, projectID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projects []*models.Project
		if err := tx.Order("id").Find(&projects).Error; err != nil {
			return err
		}

		found := false
		surviving := make([]int, 0, len(projects))
		for _, p := range projects {
			if p.ID == projectID {
				found = true
				continue
			}
			surviving = append(surviving, p.ID)
		}
		if !found {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Delete(&models.Project{}, projectID).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.OfficerRegistration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Enquiry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("applied_project_id = ?", projectID).
			Updates(map[string]interface{}{
				"applied_project_id": domain.NoAppliedProject,
				"status":             domain.StatusNotApplied,
				"applied_flat_type":  "",
				"prior_status":       "",
			}).Error; err != nil {
			return err
		}

		mapping := domain.RenumberIDs(surviving)

		// Apply reassignments in ascending order: each project only ever moves
		// to a lower, already-vacated ID.
		sort.Ints(surviving)
		for _, old := range surviving {
			next := mapping[old]
			if next == old {
				continue
			}
			if err := tx.Model(&models.Project{}).Where("id = ?", old).
				UpdateColumn("id", next).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.OfficerRegistration{}).Where("project_id = ?", old).
				UpdateColumn("project_id", next).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Enquiry{}).Where("project_id = ?", old).
				UpdateColumn("project_id", next).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("applied_project_id = ?", old).
				UpdateColumn("applied_project_id", next).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// IsNotFound reports whether the error is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
