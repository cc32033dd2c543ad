package services

import (
	"context"
	"testing"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAssigned(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.officer("T2109876H", "Daniel")

	assigned, err := s.schedule.IsAssigned(context.Background(), "T2109876H", 1)
	require.NoError(t, err)
	assert.False(t, assigned)

	s.assign("T2109876H", 1)
	assigned, err = s.schedule.IsAssigned(context.Background(), "T2109876H", 1)
	require.NoError(t, err)
	assert.True(t, assigned)
}

func TestPendingRegistrationIsNotAssignment(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.officer("T2109876H", "Daniel")
	s.registrations.add(&models.OfficerRegistration{
		OfficerNRIC: "T2109876H",
		ProjectID:   1,
		Status:      domain.RegistrationPending,
	})

	assigned, err := s.schedule.IsAssigned(context.Background(), "T2109876H", 1)
	require.NoError(t, err)
	assert.False(t, assigned)
}

func TestCanAssignOfficer(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.riversideGrove(t, 2, "S5678901G")
	s.marinaHeights(t, 3, "S5678901G")
	s.officer("T2109876H", "Daniel")

	// free officer is admissible anywhere
	require.NoError(t, s.schedule.CanAssignOfficer(context.Background(), "T2109876H", 1))

	s.assign("T2109876H", 1)

	// already on the project
	err := s.schedule.CanAssignOfficer(context.Background(), "T2109876H", 1)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)

	// overlapping window elsewhere
	err = s.schedule.CanAssignOfficer(context.Background(), "T2109876H", 2)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	// disjoint window is fine
	require.NoError(t, s.schedule.CanAssignOfficer(context.Background(), "T2109876H", 3))
}

func TestCanAssignOfficerPendingRegistrationCounts(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.riversideGrove(t, 2, "S5678901G")
	s.officer("T2109876H", "Daniel")

	s.registrations.add(&models.OfficerRegistration{
		OfficerNRIC: "T2109876H",
		ProjectID:   1,
		Status:      domain.RegistrationPending,
	})

	// a second request for the same project reports the pending one
	err := s.schedule.CanAssignOfficer(context.Background(), "T2109876H", 1)
	assert.ErrorIs(t, err, domain.ErrPendingRegistration)

	// pending windows veto overlapping candidates too
	err = s.schedule.CanAssignOfficer(context.Background(), "T2109876H", 2)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)
}

func TestCanAssignOfficerVetoedByOwnApplication(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.riversideGrove(t, 2, "S5678901G")
	s.marinaHeights(t, 3, "S5678901G")

	officer := s.officer("T2109876H", "Daniel")
	officer.Application.Status = domain.StatusPending
	officer.Application.AppliedProjectID = 1
	officer.Application.AppliedFlatType = domain.FlatTypeSmaller
	s.users.add(officer)

	// applicant commitment on an overlapping window vetoes the assignment
	err := s.schedule.CanAssignOfficer(context.Background(), "T2109876H", 2)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	// disjoint window clears
	require.NoError(t, s.schedule.CanAssignOfficer(context.Background(), "T2109876H", 3))
}

func TestCanApply(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.riversideGrove(t, 2, "S5678901G")
	s.marinaHeights(t, 3, "S5678901G")
	s.officer("T2109876H", "Daniel")
	s.assign("T2109876H", 1)

	// cannot apply to the staffed project
	err := s.schedule.CanApply(context.Background(), "T2109876H", 1)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)

	// cannot apply where the window overlaps an assignment
	err = s.schedule.CanApply(context.Background(), "T2109876H", 2)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	// disjoint project is open
	require.NoError(t, s.schedule.CanApply(context.Background(), "T2109876H", 3))
}

func TestManagerWindowClear(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")

	overlapping, err := domain.NewWindow(mustDate(t, "10/3/25"), mustDate(t, "10/4/25"))
	require.NoError(t, err)
	disjoint, err := domain.NewWindow(mustDate(t, "1/5/25"), mustDate(t, "31/5/25"))
	require.NoError(t, err)

	err = s.schedule.ManagerWindowClear(context.Background(), "S5678901G", overlapping, 0)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	require.NoError(t, s.schedule.ManagerWindowClear(context.Background(), "S5678901G", disjoint, 0))

	// the project being edited does not conflict with itself
	require.NoError(t, s.schedule.ManagerWindowClear(context.Background(), "S5678901G", overlapping, 1))

	// another manager's window is not affected
	require.NoError(t, s.schedule.ManagerWindowClear(context.Background(), "T8765432F", overlapping, 0))
}

func TestAssignedProjects(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.marinaHeights(t, 2, "S5678901G")
	s.officer("T2109876H", "Daniel")
	s.assign("T2109876H", 1)
	s.registrations.add(&models.OfficerRegistration{
		OfficerNRIC: "T2109876H",
		ProjectID:   2,
		Status:      domain.RegistrationPending,
	})

	projects, err := s.schedule.AssignedProjects(context.Background(), "T2109876H")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 1, projects[0].ID)
}
