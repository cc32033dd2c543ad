package services

import (
	"context"
	"errors"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/adapters/persistence/repositories"
	"hdb-bto-portal/internal/core/domain"

	"gorm.io/gorm"
)

// InventoryService owns per-project, per-flat-type available counts. It is the
// only writer of unit counts; handlers and other services never touch them
// directly. Reservation happens at booking, release only when an approved
// withdrawal reverses a booked allocation.
type InventoryService struct {
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(projectRepo repositories.ProjectRepository, userRepo repositories.UserRepository) *InventoryService {
	return &InventoryService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// Reserve decrements the available count for the flat type by one iff any
// remain. Exhaustion is reported as domain.ErrNoUnitsLeft, a declined result
// rather than a fault; the count never goes below zero.
func (s *InventoryService) Reserve(ctx context.Context, projectID int, flatType string) error {
	err := s.projectRepo.ReserveUnit(ctx, projectID, flatType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProjectNotFound
	}
	return err
}

// Release restores one unit for the flat type.
func (s *InventoryService) Release(ctx context.Context, projectID int, flatType string) error {
	err := s.projectRepo.ReleaseUnit(ctx, projectID, flatType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProjectNotFound
	}
	return err
}

// BookedCount derives the booked count for a project/flat-type pair by
// scanning applicant records. There is no separate ledger: re-deriving from
// the applicant set guards against drift if the store is edited out-of-band.
func (s *InventoryService) BookedCount(ctx context.Context, projectID int, flatType string) (int, error) {
	count, err := s.userRepo.CountBooked(ctx, projectID, flatType)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// FlatTypeAvailability reports one flat tier of a project.
type FlatTypeAvailability struct {
	FlatType  string `json:"flat_type"`
	Available int    `json:"available"`
	Booked    int    `json:"booked"`
	Original  int    `json:"original"`
	Price     int    `json:"price"`
}

// Reconciled reports whether available + booked matches the original count.
func (a FlatTypeAvailability) Reconciled() bool {
	return a.Available+a.Booked == a.Original
}

// AvailabilityReport reports both tiers of a project.
type AvailabilityReport struct {
	ProjectID int                    `json:"project_id"`
	Types     []FlatTypeAvailability `json:"types"`
}

// Availability builds a per-tier report reconciling available counts against
// booked applications.
func (s *InventoryService) Availability(ctx context.Context, projectID int) (*AvailabilityReport, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	report := &AvailabilityReport{ProjectID: project.ID}
	for _, tier := range []struct {
		desc     string
		units    int
		original int
		price    int
	}{
		{project.Type1Desc, project.Type1Units, project.OriginalType1Units, project.Type1Price},
		{project.Type2Desc, project.Type2Units, project.OriginalType2Units, project.Type2Price},
	} {
		booked, err := s.BookedCount(ctx, project.ID, tier.desc)
		if err != nil {
			return nil, err
		}
		report.Types = append(report.Types, FlatTypeAvailability{
			FlatType:  tier.desc,
			Available: tier.units,
			Booked:    booked,
			Original:  tier.original,
			Price:     tier.price,
		})
	}
	return report, nil
}

// HasAvailableUnits reports whether any units of the flat type remain.
func (s *InventoryService) HasAvailableUnits(ctx context.Context, project *models.Project, flatType string) (bool, error) {
	if !project.HasFlatType(flatType) {
		return false, domain.ErrUnknownFlatType
	}
	available, _ := project.AvailableUnits(flatType)
	return available > 0, nil
}
