package domain

import (
	"regexp"
	"strings"
)

// Role represents user role in the system
type Role string

const (
	RoleApplicant Role = "APPLICANT"
	RoleOfficer   Role = "OFFICER"
	RoleManager   Role = "MANAGER"
)

// MaritalStatus is the marital category used by the eligibility rules.
// Values are compared case-insensitively; anything outside the two
// canonical values is rejected.
type MaritalStatus string

const (
	MaritalSingle  MaritalStatus = "Single"
	MaritalMarried MaritalStatus = "Married"
)

// ParseMaritalStatus normalizes a free-text marital status value.
// Returns false for anything that is not Single or Married.
func ParseMaritalStatus(value string) (MaritalStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "single":
		return MaritalSingle, true
	case "married":
		return MaritalMarried, true
	default:
		return "", false
	}
}

// ApplicationStatus represents the lifecycle state of a BTO application
type ApplicationStatus string

const (
	StatusNotApplied        ApplicationStatus = "NOT_APPLIED"
	StatusPending           ApplicationStatus = "PENDING"
	StatusSuccessful        ApplicationStatus = "SUCCESSFUL"
	StatusUnsuccessful      ApplicationStatus = "UNSUCCESSFUL"
	StatusBooked            ApplicationStatus = "BOOKED"
	StatusPendingWithdrawal ApplicationStatus = "PENDING_WITHDRAWAL"
)

// NoAppliedProject is the applied-project-id baseline when a user has no application.
const NoAppliedProject = -1

// IsActive reports whether the status represents a live application that
// blocks a new one. UNSUCCESSFUL does not block reapplication.
func (s ApplicationStatus) IsActive() bool {
	switch s {
	case StatusPending, StatusSuccessful, StatusBooked, StatusPendingWithdrawal:
		return true
	default:
		return false
	}
}

// CanRequestWithdrawal reports whether a withdrawal request is legal from this status.
func (s ApplicationStatus) CanRequestWithdrawal() bool {
	switch s {
	case StatusPending, StatusSuccessful, StatusBooked:
		return true
	default:
		return false
	}
}

// Flat type tiers. The labels are configuration (seed data) rather than engine
// logic, but the two canonical tiers the business rules reference are the
// smaller 2-Room and the larger 3-Room. Comparison is case-insensitive.
const (
	FlatTypeSmaller = "2-Room"
	FlatTypeLarger  = "3-Room"
)

// FlatTypeEquals compares two flat type labels case-insensitively.
func FlatTypeEquals(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// DateFormat is the textual date layout used across stores and DTOs (d/M/yy).
const DateFormat = "2/1/06"

// Age requirements by marital category.
const (
	MinSingleAge  = 35
	MinMarriedAge = 21
)

// MinPasswordLength is the minimum credential length accepted at password change.
const MinPasswordLength = 8

var nricPattern = regexp.MustCompile(`^[ST]\d{7}[A-Z]$`)

// ValidNRIC reports whether the identity string matches the national-ID format:
// 'S' or 'T', seven digits, one uppercase letter.
func ValidNRIC(nric string) bool {
	return nricPattern.MatchString(nric)
}

// RegistrationStatus represents the state of an officer's project registration.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)
