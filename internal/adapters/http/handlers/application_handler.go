package handlers

import (
	"context"
	"errors"
	"strings"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"
	"hdb-bto-portal/internal/core/services"
	"hdb-bto-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles application lifecycle endpoints
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// ApplyRequest represents an application submission body
type ApplyRequest struct {
	ProjectID int    `json:"project_id"`
	FlatType  string `json:"flat_type"`
}

// Apply submits a new application
// @Summary Apply for a flat
// @Description Submit an application for a project's flat type
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ApplyRequest true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ProjectID <= 0 {
		return response.BadRequest(c, "Project ID is required")
	}
	if strings.TrimSpace(req.FlatType) == "" {
		return response.BadRequest(c, "Flat type is required")
	}

	user, err := h.applicationService.Apply(c.Context(), nric, req.ProjectID, req.FlatType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrProjectNotVisible):
			return response.UnprocessableEntity(c, "Project is not open to applicants")
		case errors.Is(err, services.ErrProjectClosed):
			return response.UnprocessableEntity(c, "Project application window is closed")
		case errors.Is(err, domain.ErrAlreadyResolved):
			return response.Conflict(c, "Application has already been resolved")
		case errors.Is(err, domain.ErrActiveApplication):
			return response.Conflict(c, "An active application already exists")
		case errors.Is(err, domain.ErrIneligibleFlatType):
			return response.UnprocessableEntity(c, "Not eligible for this flat type")
		case errors.Is(err, domain.ErrBelowMinimumAge):
			return response.UnprocessableEntity(c, "Below the minimum age for this flat type")
		case errors.Is(err, domain.ErrInvalidMaritalStatus):
			return response.UnprocessableEntity(c, "Marital status not recognised")
		case errors.Is(err, domain.ErrNoUnitsLeft), errors.Is(err, domain.ErrUnknownFlatType):
			return response.UnprocessableEntity(c, "No units of this flat type are available")
		case errors.Is(err, domain.ErrScheduleConflict), errors.Is(err, domain.ErrAlreadyAssigned), errors.Is(err, domain.ErrPendingRegistration):
			return response.Conflict(c, "Staffing commitments conflict with this application")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Managers cannot apply for flats")
		default:
			return response.InternalServerError(c, "Failed to submit application")
		}
	}

	return response.Created(c, "Application submitted", fiber.Map{
		"user": user.ToResponse(),
	})
}

// RequestWithdrawal asks to withdraw the caller's application
// @Summary Request withdrawal
// @Description Request withdrawal of the caller's active application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /applications/withdrawal [post]
func (h *ApplicationHandler) RequestWithdrawal(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.applicationService.RequestWithdrawal(c.Context(), nric)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWithdrawalPending):
			return response.Conflict(c, "A withdrawal request is already awaiting decision")
		case errors.Is(err, domain.ErrNoActiveApplication):
			return response.UnprocessableEntity(c, "No active application to withdraw")
		default:
			return response.InternalServerError(c, "Failed to request withdrawal")
		}
	}

	return response.Success(c, "Withdrawal requested", fiber.Map{
		"user": user.ToResponse(),
	})
}

// Approve approves a pending application
// @Summary Approve application
// @Description Mark a pending application successful
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param nric path string true "Applicant NRIC"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{nric}/approve [put]
func (h *ApplicationHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, h.applicationService.Approve, "Application approved")
}

// Reject rejects a pending application
// @Summary Reject application
// @Description Mark a pending application unsuccessful
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param nric path string true "Applicant NRIC"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{nric}/reject [put]
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.applicationService.Reject, "Application rejected")
}

// ApproveWithdrawal approves a pending withdrawal request
// @Summary Approve withdrawal
// @Description Approve a withdrawal request and reset the application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param nric path string true "Applicant NRIC"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{nric}/withdrawal/approve [put]
func (h *ApplicationHandler) ApproveWithdrawal(c *fiber.Ctx) error {
	return h.decide(c, h.applicationService.ApproveWithdrawal, "Withdrawal approved")
}

// RejectWithdrawal rejects a pending withdrawal request
// @Summary Reject withdrawal
// @Description Reject a withdrawal request and restore the prior status
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param nric path string true "Applicant NRIC"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{nric}/withdrawal/reject [put]
func (h *ApplicationHandler) RejectWithdrawal(c *fiber.Ctx) error {
	return h.decide(c, h.applicationService.RejectWithdrawal, "Withdrawal rejected")
}

// Book books a flat for a successful applicant
// @Summary Book a flat
// @Description Reserve a unit and mark a successful application booked
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param nric path string true "Applicant NRIC"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications/{nric}/book [put]
func (h *ApplicationHandler) Book(c *fiber.Ctx) error {
	officerNRIC, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	nric := strings.ToUpper(c.Params("nric"))

	user, err := h.applicationService.Book(c.Context(), officerNRIC, nric)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Applicant not found")
		case errors.Is(err, domain.ErrApplicationNotSuccessful):
			return response.UnprocessableEntity(c, "Application is not awaiting booking")
		case errors.Is(err, services.ErrNotAssignedOfficer):
			return response.Forbidden(c, "Not an assigned officer for this project")
		case errors.Is(err, domain.ErrNoUnitsLeft):
			return response.UnprocessableEntity(c, "No units of this flat type remain")
		default:
			return response.InternalServerError(c, "Failed to book flat")
		}
	}

	return response.Success(c, "Flat booked", fiber.Map{
		"user": user.ToResponse(),
	})
}

// List lists applications, optionally filtered by status or project
// @Summary List applications
// @Description List applications filtered by status or project
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Application status"
// @Param project_id query int false "Project ID"
// @Success 200 {object} response.Response
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	if projectID := c.QueryInt("project_id"); projectID > 0 {
		users, err := h.applicationService.ListByProject(c.Context(), projectID)
		if err != nil {
			return response.InternalServerError(c, "Failed to list applications")
		}
		return response.Success(c, "Applications retrieved", usersToResponses(users))
	}

	status := domain.ApplicationStatus(strings.ToUpper(c.Query("status", string(domain.StatusPending))))
	users, err := h.applicationService.ListByStatus(c.Context(), status)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}
	return response.Success(c, "Applications retrieved", usersToResponses(users))
}

func (h *ApplicationHandler) decide(
	c *fiber.Ctx,
	op func(ctx context.Context, managerNRIC, nric string) (*models.User, error),
	okMessage string,
) error {
	managerNRIC, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	nric := strings.ToUpper(c.Params("nric"))

	user, err := op(c.Context(), managerNRIC, nric)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Applicant not found")
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrNotProjectManager):
			return response.Forbidden(c, "Project is managed by another manager")
		case errors.Is(err, domain.ErrApplicationNotPending):
			return response.UnprocessableEntity(c, "Application is not pending")
		case errors.Is(err, domain.ErrNoPendingWithdrawal):
			return response.UnprocessableEntity(c, "No withdrawal request is awaiting decision")
		default:
			return response.InternalServerError(c, "Failed to update application")
		}
	}

	return response.Success(c, okMessage, fiber.Map{
		"user": user.ToResponse(),
	})
}
