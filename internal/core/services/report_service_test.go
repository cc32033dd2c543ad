package services

import (
	"context"
	"testing"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testStack) bookInto(user *models.User, projectID int, flatType string) *models.User {
	user.Application.Status = domain.StatusBooked
	user.Application.AppliedProjectID = projectID
	user.Application.AppliedFlatType = flatType
	return s.users.add(user)
}

func TestReceiptPricesByTier(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.bookInto(s.marriedApplicant("T7654321B", "Sarah", 40), 1, domain.FlatTypeLarger)
	s.bookInto(s.singleApplicant("S1234567A", "John", 36), 1, "2-room")

	receipt, err := s.reports.Receipt(context.Background(), "T7654321B")
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ReceiptID)
	assert.Equal(t, "Sarah", receipt.ApplicantName)
	assert.Equal(t, "Acacia Breeze", receipt.ProjectName)
	assert.Equal(t, "Yishun", receipt.Neighborhood)
	assert.Equal(t, 450000, receipt.Price)

	// tier matching tolerates case differences in the stored flat type
	receipt, err = s.reports.Receipt(context.Background(), "S1234567A")
	require.NoError(t, err)
	assert.Equal(t, 350000, receipt.Price)
}

func TestReceiptRequiresBooking(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")

	applicant := s.marriedApplicant("T7654321B", "Sarah", 40)
	applicant.Application.Status = domain.StatusSuccessful
	applicant.Application.AppliedProjectID = 1
	applicant.Application.AppliedFlatType = domain.FlatTypeLarger
	s.users.add(applicant)

	_, err := s.reports.Receipt(context.Background(), "T7654321B")
	assert.ErrorIs(t, err, domain.ErrApplicationNotSuccessful)

	_, err = s.reports.Receipt(context.Background(), "T0000000X")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBookingReportScopesAndFilters(t *testing.T) {
	s := newTestStack()
	s.acaciaBreeze(t, 1, "S5678901G")
	s.riversideGrove(t, 2, "S5678901G")
	s.marinaHeights(t, 3, "T8765432F")

	s.bookInto(s.marriedApplicant("T7654321B", "Sarah", 40), 1, domain.FlatTypeLarger)
	s.bookInto(s.singleApplicant("S1234567A", "John", 36), 2, domain.FlatTypeSmaller)
	s.bookInto(s.marriedApplicant("T9999999E", "Wei Ming", 28), 3, domain.FlatTypeLarger)

	// the report covers only the requesting manager's projects
	rows, err := s.reports.BookingReport(context.Background(), "S5678901G", ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = s.reports.BookingReport(context.Background(), "S5678901G", ReportFilter{MaritalStatus: "married"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sarah", rows[0].ApplicantName)

	rows, err = s.reports.BookingReport(context.Background(), "S5678901G", ReportFilter{FlatType: "2-ROOM"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "John", rows[0].ApplicantName)

	rows, err = s.reports.BookingReport(context.Background(), "S5678901G", ReportFilter{ProjectID: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Riverside Grove", rows[0].ProjectName)

	rows, err = s.reports.BookingReport(context.Background(), "T8765432F", ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Wei Ming", rows[0].ApplicantName)
}
