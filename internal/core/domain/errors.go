package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Eligibility and validation errors
var (
	ErrInvalidMaritalStatus = errors.New("invalid marital status")
	ErrIneligibleFlatType   = errors.New("not eligible for this flat type")
	ErrBelowMinimumAge      = errors.New("does not meet the age requirement")
	ErrInvalidNRIC          = errors.New("invalid NRIC format")
)

// Application lifecycle errors
var (
	ErrAlreadyResolved         = errors.New("application already approved or booked")
	ErrActiveApplication       = errors.New("an active application already exists")
	ErrNoActiveApplication     = errors.New("no active application")
	ErrWithdrawalPending       = errors.New("withdrawal request already awaiting decision")
	ErrNoPendingWithdrawal     = errors.New("no pending withdrawal request")
	ErrApplicationNotPending   = errors.New("application is not pending review")
	ErrApplicationNotSuccessful = errors.New("application has not been approved for booking")
)

// Inventory errors
var (
	ErrNoUnitsLeft     = errors.New("no units left for this flat type")
	ErrUnknownFlatType = errors.New("unknown flat type for this project")
)

// Scheduling errors
var (
	ErrScheduleConflict   = errors.New("commitment window overlaps an existing commitment")
	ErrAlreadyAssigned    = errors.New("already assigned to this project")
	ErrPendingRegistration = errors.New("a registration for this project is already pending")
	ErrNoOfficerSlots     = errors.New("no officer slots remaining")
)
