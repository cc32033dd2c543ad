package config

import (
	"log"
	"time"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"
	"hdb-bto-portal/internal/pkg/password"

	"gorm.io/gorm"
)

// DefaultPassword is the credential every seeded user starts with.
const DefaultPassword = "password123"

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Seeding is idempotent: nothing is written when
// users or projects already exist.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedUsers(); err != nil {
		return err
	}
	if err := s.seedProjects(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

type seedUser struct {
	name    string
	nric    string
	age     int
	marital domain.MaritalStatus
	role    domain.Role
}

// seedUsers seeds the sample applicant/officer/manager set for development.
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(DefaultPassword)
	if err != nil {
		return err
	}

	seeds := []seedUser{
		{"John", "S1234567A", 35, domain.MaritalSingle, domain.RoleApplicant},
		{"Sarah", "T7654321B", 40, domain.MaritalMarried, domain.RoleApplicant},
		{"Grace", "S9876543C", 37, domain.MaritalMarried, domain.RoleApplicant},
		{"James", "T2345678D", 30, domain.MaritalMarried, domain.RoleApplicant},
		{"Rachel", "S3456789E", 25, domain.MaritalSingle, domain.RoleApplicant},
		{"Daniel", "T2109876H", 36, domain.MaritalSingle, domain.RoleOfficer},
		{"Emily", "S6543210I", 28, domain.MaritalSingle, domain.RoleOfficer},
		{"David", "T1234567J", 29, domain.MaritalMarried, domain.RoleOfficer},
		{"Michael", "T8765432F", 36, domain.MaritalSingle, domain.RoleManager},
		{"Jessica", "S5678901G", 26, domain.MaritalMarried, domain.RoleManager},
	}

	for _, seed := range seeds {
		user := &models.User{
			NRIC:          seed.nric,
			Name:          seed.name,
			Password:      hashed,
			Age:           seed.age,
			MaritalStatus: string(seed.marital),
			Role:          seed.role,
			Application: models.ApplicationState{
				AppliedProjectID: domain.NoAppliedProject,
				Status:           domain.StatusNotApplied,
			},
		}
		if err := s.db.Create(user).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d users", len(seeds))
	return nil
}

// seedProjects seeds the sample BTO projects.
func (s *Seeder) seedProjects() error {
	var count int64
	s.db.Model(&models.Project{}).Count(&count)
	if count > 0 {
		return nil
	}

	date := func(day, month, year int) time.Time {
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}

	projects := []*models.Project{
		{
			ID:                 1,
			Name:               "Acacia Breeze",
			Neighborhood:       "Yishun",
			Type1Desc:          domain.FlatTypeSmaller,
			Type1Units:         2,
			Type1Price:         350000,
			Type2Desc:          domain.FlatTypeLarger,
			Type2Units:         3,
			Type2Price:         450000,
			OriginalType1Units: 2,
			OriginalType2Units: 3,
			OpeningDate:        date(15, 2, 2025),
			ClosingDate:        date(20, 3, 2025),
			ManagerNRIC:        "S5678901G",
			OfficerSlots:       3,
			Visible:            true,
		},
		{
			ID:                 2,
			Name:               "Riverside Grove",
			Neighborhood:       "Punggol",
			Type1Desc:          domain.FlatTypeSmaller,
			Type1Units:         4,
			Type1Price:         320000,
			Type2Desc:          domain.FlatTypeLarger,
			Type2Units:         5,
			Type2Price:         420000,
			OriginalType1Units: 4,
			OriginalType2Units: 5,
			OpeningDate:        date(1, 5, 2025),
			ClosingDate:        date(15, 6, 2025),
			ManagerNRIC:        "T8765432F",
			OfficerSlots:       2,
			Visible:            true,
		},
	}

	for _, p := range projects {
		if err := s.db.Create(p).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d projects", len(projects))
	return nil
}
