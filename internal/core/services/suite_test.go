package services

import (
	"testing"
	"time"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testStack wires the full service graph over in-memory repositories.
type testStack struct {
	users         *fakeUserRepo
	projects      *fakeProjectRepo
	registrations *fakeRegistrationRepo
	enquiries     *fakeEnquiryRepo

	inventory      *InventoryService
	schedule       *ScheduleService
	applications   *ApplicationService
	projectsSvc    *ProjectService
	registrations2 *RegistrationService
	enquiriesSvc   *EnquiryService
	reports        *ReportService
}

func newTestStack() *testStack {
	users := newFakeUserRepo()
	projects := newFakeProjectRepo()
	registrations := newFakeRegistrationRepo()
	enquiries := newFakeEnquiryRepo()

	log := zap.NewNop()
	inventory := NewInventoryService(projects, users)
	schedule := NewScheduleService(projects, users, registrations)

	return &testStack{
		users:          users,
		projects:       projects,
		registrations:  registrations,
		enquiries:      enquiries,
		inventory:      inventory,
		schedule:       schedule,
		applications:   NewApplicationService(users, projects, inventory, schedule, log),
		projectsSvc:    NewProjectService(projects, schedule, log),
		registrations2: NewRegistrationService(registrations, projects, users, schedule, log),
		enquiriesSvc:   NewEnquiryService(enquiries, projects, schedule),
		reports:        NewReportService(users, projects),
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

// acaciaBreeze seeds a two-tier project open 15/2/25 to 20/3/25.
func (s *testStack) acaciaBreeze(t *testing.T, id int, managerNRIC string) *models.Project {
	t.Helper()
	return s.projects.add(&models.Project{
		ID:                 id,
		Name:               "Acacia Breeze",
		Neighborhood:       "Yishun",
		Type1Desc:          domain.FlatTypeSmaller,
		Type1Units:         2,
		OriginalType1Units: 2,
		Type1Price:         350000,
		Type2Desc:          domain.FlatTypeLarger,
		Type2Units:         3,
		OriginalType2Units: 3,
		Type2Price:         450000,
		OpeningDate:        mustDate(t, "15/2/25"),
		ClosingDate:        mustDate(t, "20/3/25"),
		ManagerNRIC:        managerNRIC,
		OfficerSlots:       3,
		Visible:            true,
	})
}

// riversideGrove seeds a project whose window overlaps acaciaBreeze.
func (s *testStack) riversideGrove(t *testing.T, id int, managerNRIC string) *models.Project {
	t.Helper()
	return s.projects.add(&models.Project{
		ID:                 id,
		Name:               "Riverside Grove",
		Neighborhood:       "Punggol",
		Type1Desc:          domain.FlatTypeSmaller,
		Type1Units:         4,
		OriginalType1Units: 4,
		Type1Price:         320000,
		Type2Desc:          domain.FlatTypeLarger,
		Type2Units:         4,
		OriginalType2Units: 4,
		Type2Price:         430000,
		OpeningDate:        mustDate(t, "1/3/25"),
		ClosingDate:        mustDate(t, "15/4/25"),
		ManagerNRIC:        managerNRIC,
		OfficerSlots:       2,
		Visible:            true,
	})
}

// marinaHeights seeds a project whose window is disjoint from acaciaBreeze.
func (s *testStack) marinaHeights(t *testing.T, id int, managerNRIC string) *models.Project {
	t.Helper()
	return s.projects.add(&models.Project{
		ID:                 id,
		Name:               "Marina Heights",
		Neighborhood:       "Kallang",
		Type1Desc:          domain.FlatTypeSmaller,
		Type1Units:         5,
		OriginalType1Units: 5,
		Type1Price:         400000,
		Type2Desc:          domain.FlatTypeLarger,
		Type2Units:         5,
		OriginalType2Units: 5,
		Type2Price:         520000,
		OpeningDate:        mustDate(t, "1/6/25"),
		ClosingDate:        mustDate(t, "30/6/25"),
		ManagerNRIC:        managerNRIC,
		OfficerSlots:       2,
		Visible:            true,
	})
}

func (s *testStack) marriedApplicant(nric, name string, age int) *models.User {
	return s.users.add(&models.User{
		NRIC:          nric,
		Name:          name,
		Password:      "x",
		Age:           age,
		MaritalStatus: "Married",
		Role:          domain.RoleApplicant,
	})
}

func (s *testStack) singleApplicant(nric, name string, age int) *models.User {
	return s.users.add(&models.User{
		NRIC:          nric,
		Name:          name,
		Password:      "x",
		Age:           age,
		MaritalStatus: "Single",
		Role:          domain.RoleApplicant,
	})
}

func (s *testStack) officer(nric, name string) *models.User {
	return s.users.add(&models.User{
		NRIC:          nric,
		Name:          name,
		Password:      "x",
		Age:           30,
		MaritalStatus: "Married",
		Role:          domain.RoleOfficer,
	})
}

func (s *testStack) manager(nric, name string) *models.User {
	return s.users.add(&models.User{
		NRIC:          nric,
		Name:          name,
		Password:      "x",
		Age:           40,
		MaritalStatus: "Married",
		Role:          domain.RoleManager,
	})
}

func (s *testStack) assign(officerNRIC string, projectID int) {
	s.registrations.add(&models.OfficerRegistration{
		OfficerNRIC: officerNRIC,
		ProjectID:   projectID,
		Status:      domain.RegistrationApproved,
	})
}

// midWindow is a clock inside the acaciaBreeze application window.
func midWindow(t *testing.T) func() time.Time {
	now := mustDate(t, "1/3/25")
	return func() time.Time { return now }
}
