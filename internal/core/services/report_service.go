package services

import (
	"context"
	"errors"

	"hdb-bto-portal/internal/adapters/persistence/repositories"
	"hdb-bto-portal/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingReceipt is the record an officer generates after a booking
type BookingReceipt struct {
	ReceiptID     string `json:"receipt_id"`
	ApplicantName string `json:"applicant_name"`
	NRIC          string `json:"nric"`
	Age           int    `json:"age"`
	MaritalStatus string `json:"marital_status"`
	FlatType      string `json:"flat_type"`
	ProjectID     int    `json:"project_id"`
	ProjectName   string `json:"project_name"`
	Neighborhood  string `json:"neighborhood"`
	Price         int    `json:"price"`
}

// ReportRow is one line of a manager's booking report
type ReportRow struct {
	ApplicantName string `json:"applicant_name"`
	NRIC          string `json:"nric"`
	Age           int    `json:"age"`
	MaritalStatus string `json:"marital_status"`
	FlatType      string `json:"flat_type"`
	ProjectName   string `json:"project_name"`
}

// ReportFilter narrows a booking report. Zero values mean no filtering on
// that field.
type ReportFilter struct {
	MaritalStatus string `json:"marital_status,omitempty"`
	FlatType      string `json:"flat_type,omitempty"`
	ProjectID     int    `json:"project_id,omitempty"`
}

// ReportService produces booking receipts and manager reports over the
// applicant records. Everything is derived at read time from the user store.
type ReportService struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
}

// NewReportService creates a new report service
func NewReportService(userRepo repositories.UserRepository, projectRepo repositories.ProjectRepository) *ReportService {
	return &ReportService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

// Receipt builds a booking receipt for a booked applicant
func (s *ReportService) Receipt(ctx context.Context, nric string) (*BookingReceipt, error) {
	user, err := s.userRepo.GetByNRIC(ctx, nric)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Application.Status != domain.StatusBooked {
		return nil, domain.ErrApplicationNotSuccessful
	}

	project, err := s.projectRepo.GetByID(ctx, user.Application.AppliedProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	price := project.Type1Price
	if domain.FlatTypeEquals(project.Type2Desc, user.Application.AppliedFlatType) {
		price = project.Type2Price
	}

	return &BookingReceipt{
		ReceiptID:     uuid.NewString(),
		ApplicantName: user.Name,
		NRIC:          user.NRIC,
		Age:           user.Age,
		MaritalStatus: user.MaritalStatus,
		FlatType:      user.Application.AppliedFlatType,
		ProjectID:     project.ID,
		ProjectName:   project.Name,
		Neighborhood:  project.Neighborhood,
		Price:         price,
	}, nil
}

// BookingReport lists booked applicants across the manager's projects,
// narrowed by the filter.
func (s *ReportService) BookingReport(ctx context.Context, managerNRIC string, filter ReportFilter) ([]ReportRow, error) {
	managed, err := s.projectRepo.ListByManager(ctx, managerNRIC)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(managed))
	for _, p := range managed {
		if filter.ProjectID != 0 && p.ID != filter.ProjectID {
			continue
		}
		names[p.ID] = p.Name
	}

	booked, err := s.userRepo.ListByStatus(ctx, domain.StatusBooked)
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(booked))
	for _, user := range booked {
		name, managedHere := names[user.Application.AppliedProjectID]
		if !managedHere {
			continue
		}
		if filter.MaritalStatus != "" && !equalFoldStatus(user.MaritalStatus, filter.MaritalStatus) {
			continue
		}
		if filter.FlatType != "" && !domain.FlatTypeEquals(user.Application.AppliedFlatType, filter.FlatType) {
			continue
		}
		rows = append(rows, ReportRow{
			ApplicantName: user.Name,
			NRIC:          user.NRIC,
			Age:           user.Age,
			MaritalStatus: user.MaritalStatus,
			FlatType:      user.Application.AppliedFlatType,
			ProjectName:   name,
		})
	}
	return rows, nil
}

func equalFoldStatus(a, b string) bool {
	sa, okA := domain.ParseMaritalStatus(a)
	sb, okB := domain.ParseMaritalStatus(b)
	return okA && okB && sa == sb
}
