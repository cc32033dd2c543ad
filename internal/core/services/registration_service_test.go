package services

import (
	"context"
	"testing"

	"hdb-bto-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterForProject(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.officer("T2345678C", "Daniel")

	reg, err := s.registrations2.Register(context.Background(), "T2345678C", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPending, reg.Status)
	assert.Equal(t, "T2345678C", reg.OfficerNRIC)
	assert.Equal(t, 1, reg.ProjectID)
}

func TestRegisterGuards(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.officer("T2345678C", "Daniel")
	s.marriedApplicant("T7654321B", "Sarah", 40)

	_, err := s.registrations2.Register(context.Background(), "T7654321B", 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = s.registrations2.Register(context.Background(), "T0000000X", 1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.registrations2.Register(context.Background(), "T2345678C", 99)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestRegisterBlockedByOwnApplication(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")

	officer := s.officer("T2345678C", "Daniel")
	officer.Application.Status = domain.StatusPending
	officer.Application.AppliedProjectID = 1
	officer.Application.AppliedFlatType = domain.FlatTypeLarger
	s.users.add(officer)

	_, err := s.registrations2.Register(context.Background(), "T2345678C", 1)
	assert.ErrorIs(t, err, ErrOwnApplication)
}

func TestRegisterBlockedByOverlappingAssignment(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.riversideGrove(t, 2, "T8765432F")
	s.officer("T2345678C", "Daniel")
	s.assign("T2345678C", 1)

	_, err := s.registrations2.Register(context.Background(), "T2345678C", 2)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)
}

func TestApproveRegistration(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.officer("T2345678C", "Daniel")

	reg, err := s.registrations2.Register(context.Background(), "T2345678C", 1)
	require.NoError(t, err)

	// the officer's own pending request must not veto its own approval
	approved, err := s.registrations2.Approve(context.Background(), "S5678901G", reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationApproved, approved.Status)

	assigned, err := s.schedule.IsAssigned(context.Background(), "T2345678C", 1)
	require.NoError(t, err)
	assert.True(t, assigned)
}

func TestApproveRechecksOfficerCommitments(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.riversideGrove(t, 2, "T8765432F")

	reg, err := s.registrations2.Register(context.Background(), s.officer("T2345678C", "Daniel").NRIC, 1)
	require.NoError(t, err)

	// while the request sits pending, the officer applies to an
	// overlapping project
	officer, err := s.users.GetByNRIC(context.Background(), "T2345678C")
	require.NoError(t, err)
	officer.Application.Status = domain.StatusPending
	officer.Application.AppliedProjectID = 2
	officer.Application.AppliedFlatType = domain.FlatTypeLarger
	require.NoError(t, s.users.Save(context.Background(), officer))

	_, err = s.registrations2.Approve(context.Background(), "S5678901G", reg.ID)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	stored, err := s.registrations.GetByID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPending, stored.Status)
}

func TestApproveRequiresOwningManagerOfRegistration(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.officer("T2345678C", "Daniel")

	reg, err := s.registrations2.Register(context.Background(), "T2345678C", 1)
	require.NoError(t, err)

	_, err = s.registrations2.Approve(context.Background(), "T8765432F", reg.ID)
	assert.ErrorIs(t, err, ErrNotProjectManager)
}

func TestApproveDecidedRegistration(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.officer("T2345678C", "Daniel")

	reg, err := s.registrations2.Register(context.Background(), "T2345678C", 1)
	require.NoError(t, err)

	_, err = s.registrations2.Reject(context.Background(), "S5678901G", reg.ID)
	require.NoError(t, err)

	_, err = s.registrations2.Approve(context.Background(), "S5678901G", reg.ID)
	assert.ErrorIs(t, err, ErrRegistrationDecided)

	_, err = s.registrations2.Approve(context.Background(), "S5678901G", 99)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestRegisterWhenSlotsFull(t *testing.T) {
	s := newTestStack()
	project := s.acaciaBreeze(t, 1, "S5678901G")
	project.OfficerSlots = 1
	s.projects.add(project)

	s.officer("T2345678C", "Daniel")
	s.assign("T3456789D", 1)

	_, err := s.registrations2.Register(context.Background(), "T2345678C", 1)
	assert.ErrorIs(t, err, domain.ErrNoOfficerSlots)
}

func TestApproveExhaustedOfficerSlots(t *testing.T) {
	s := newTestStack()
	project := s.acaciaBreeze(t, 1, "S5678901G")
	project.OfficerSlots = 1
	s.projects.add(project)

	s.officer("T2345678C", "Daniel")

	// the slot fills after the request is queued but before it is decided
	reg, err := s.registrations2.Register(context.Background(), "T2345678C", 1)
	require.NoError(t, err)
	s.assign("T3456789D", 1)

	_, err = s.registrations2.Approve(context.Background(), "S5678901G", reg.ID)
	assert.ErrorIs(t, err, domain.ErrNoOfficerSlots)
}

func TestRejectLeavesOfficerUnassigned(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.officer("T2345678C", "Daniel")

	reg, err := s.registrations2.Register(context.Background(), "T2345678C", 1)
	require.NoError(t, err)

	rejected, err := s.registrations2.Reject(context.Background(), "S5678901G", reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationRejected, rejected.Status)

	assigned, err := s.schedule.IsAssigned(context.Background(), "T2345678C", 1)
	require.NoError(t, err)
	assert.False(t, assigned)
}

func TestListRegistrations(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.marinaHeights(t, 2, "T8765432F")
	s.officer("T2345678C", "Daniel")

	_, err := s.registrations2.Register(context.Background(), "T2345678C", 1)
	require.NoError(t, err)
	_, err = s.registrations2.Register(context.Background(), "T2345678C", 2)
	require.NoError(t, err)

	mine, err := s.registrations2.ListByOfficer(context.Background(), "T2345678C")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	forProject, err := s.registrations2.ListByProject(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, forProject, 1)
}
