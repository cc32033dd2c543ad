package handlers

import (
	"errors"

	"hdb-bto-portal/internal/core/domain"
	"hdb-bto-portal/internal/core/services"
	"hdb-bto-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RegistrationHandler handles officer registration endpoints
type RegistrationHandler struct {
	registrationService *services.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// RegisterRequest represents an officer registration body
type RegisterRequest struct {
	ProjectID int `json:"project_id"`
}

// Register submits a request to staff a project
// @Summary Register to staff a project
// @Description Submit an officer's request to staff a project
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /registrations [post]
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ProjectID <= 0 {
		return response.BadRequest(c, "Project ID is required")
	}

	registration, err := h.registrationService.Register(c.Context(), nric, req.ProjectID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrOwnApplication):
			return response.Conflict(c, "You have applied for this project as an applicant")
		case errors.Is(err, domain.ErrAlreadyAssigned):
			return response.Conflict(c, "Already assigned to this project")
		case errors.Is(err, domain.ErrPendingRegistration):
			return response.Conflict(c, "A registration for this project is already pending")
		case errors.Is(err, domain.ErrScheduleConflict):
			return response.Conflict(c, "Assignment overlaps an existing commitment")
		case errors.Is(err, domain.ErrNoOfficerSlots):
			return response.UnprocessableEntity(c, "No officer slots remain on this project")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only officers can register to staff projects")
		default:
			return response.InternalServerError(c, "Failed to submit registration")
		}
	}

	return response.Created(c, "Registration submitted", fiber.Map{
		"registration": registration,
	})
}

// ListMine lists the caller's registrations
// @Summary List own registrations
// @Description List the acting officer's registrations
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /registrations/mine [get]
func (h *RegistrationHandler) ListMine(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	registrations, err := h.registrationService.ListByOfficer(c.Context(), nric)
	if err != nil {
		return response.InternalServerError(c, "Failed to list registrations")
	}

	return response.Success(c, "Registrations retrieved", registrations)
}

// ListByProject lists registrations targeting a project
// @Summary List project registrations
// @Description List officer registrations targeting a project
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Router /registrations/project/{id} [get]
func (h *RegistrationHandler) ListByProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	registrations, err := h.registrationService.ListByProject(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to list registrations")
	}

	return response.Success(c, "Registrations retrieved", registrations)
}

// Approve grants a pending registration
// @Summary Approve registration
// @Description Approve a pending officer registration
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /registrations/{id}/approve [put]
func (h *RegistrationHandler) Approve(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid registration ID")
	}

	registration, err := h.registrationService.Approve(c.Context(), nric, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationNotFound):
			return response.NotFound(c, "Registration not found")
		case errors.Is(err, services.ErrRegistrationDecided):
			return response.Conflict(c, "Registration has already been decided")
		case errors.Is(err, services.ErrNotProjectManager):
			return response.Forbidden(c, "Project is managed by another manager")
		case errors.Is(err, domain.ErrNoOfficerSlots):
			return response.UnprocessableEntity(c, "No officer slots remain on this project")
		case errors.Is(err, domain.ErrScheduleConflict), errors.Is(err, domain.ErrAlreadyAssigned):
			return response.Conflict(c, "Assignment overlaps an existing commitment")
		default:
			return response.InternalServerError(c, "Failed to approve registration")
		}
	}

	return response.Success(c, "Registration approved", fiber.Map{
		"registration": registration,
	})
}

// Reject declines a pending registration
// @Summary Reject registration
// @Description Reject a pending officer registration
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /registrations/{id}/reject [put]
func (h *RegistrationHandler) Reject(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid registration ID")
	}

	registration, err := h.registrationService.Reject(c.Context(), nric, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationNotFound):
			return response.NotFound(c, "Registration not found")
		case errors.Is(err, services.ErrRegistrationDecided):
			return response.Conflict(c, "Registration has already been decided")
		case errors.Is(err, services.ErrNotProjectManager):
			return response.Forbidden(c, "Project is managed by another manager")
		default:
			return response.InternalServerError(c, "Failed to reject registration")
		}
	}

	return response.Success(c, "Registration rejected", fiber.Map{
		"registration": registration,
	})
}
