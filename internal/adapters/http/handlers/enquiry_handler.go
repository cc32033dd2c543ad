package handlers

import (
	"errors"

	"hdb-bto-portal/internal/core/domain"
	"hdb-bto-portal/internal/core/services"
	"hdb-bto-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EnquiryHandler handles enquiry endpoints
type EnquiryHandler struct {
	enquiryService *services.EnquiryService
	userService    *services.UserService
}

// NewEnquiryHandler creates a new enquiry handler
func NewEnquiryHandler(enquiryService *services.EnquiryService, userService *services.UserService) *EnquiryHandler {
	return &EnquiryHandler{
		enquiryService: enquiryService,
		userService:    userService,
	}
}

// SubmitEnquiryRequest represents a new enquiry body
type SubmitEnquiryRequest struct {
	ProjectID int    `json:"project_id"`
	Text      string `json:"text"`
}

// EnquiryTextRequest represents an enquiry text update or reply body
type EnquiryTextRequest struct {
	Text string `json:"text"`
}

// Submit files a new enquiry
// @Summary Submit enquiry
// @Description File a free-text enquiry about a project
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitEnquiryRequest true "Enquiry data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /enquiries [post]
func (h *EnquiryHandler) Submit(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubmitEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	enquiry, err := h.enquiryService.Submit(c.Context(), nric, req.ProjectID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyEnquiry):
			return response.BadRequest(c, "Enquiry text cannot be empty")
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		default:
			return response.InternalServerError(c, "Failed to submit enquiry")
		}
	}

	return response.Created(c, "Enquiry submitted", fiber.Map{
		"enquiry": enquiry,
	})
}

// ListMine lists the caller's enquiries
// @Summary List own enquiries
// @Description List the caller's enquiries
// @Tags Enquiries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /enquiries/mine [get]
func (h *EnquiryHandler) ListMine(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	enquiries, err := h.enquiryService.ListOwn(c.Context(), nric)
	if err != nil {
		return response.InternalServerError(c, "Failed to list enquiries")
	}

	return response.Success(c, "Enquiries retrieved", enquiries)
}

// ListHandled lists enquiries for the projects the caller covers
// @Summary List handled enquiries
// @Description List enquiries for the projects the staff member covers
// @Tags Enquiries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /enquiries/handled [get]
func (h *EnquiryHandler) ListHandled(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	staff, err := h.userService.GetProfile(c.Context(), nric)
	if err != nil {
		return response.InternalServerError(c, "Failed to list enquiries")
	}

	enquiries, err := h.enquiryService.ListHandled(c.Context(), staff)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "Only project staff can view handled enquiries")
		}
		return response.InternalServerError(c, "Failed to list enquiries")
	}

	return response.Success(c, "Enquiries retrieved", enquiries)
}

// Edit rewrites the caller's own unanswered enquiry
// @Summary Edit enquiry
// @Description Edit the caller's own unanswered enquiry
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Param body body EnquiryTextRequest true "New text"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /enquiries/{id} [put]
func (h *EnquiryHandler) Edit(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid enquiry ID")
	}

	var req EnquiryTextRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	enquiry, err := h.enquiryService.Edit(c.Context(), nric, uint(id), req.Text)
	if err != nil {
		return h.mapEnquiryError(c, err, "Failed to edit enquiry")
	}

	return response.Success(c, "Enquiry updated", fiber.Map{
		"enquiry": enquiry,
	})
}

// Delete removes the caller's own unanswered enquiry
// @Summary Delete enquiry
// @Description Delete the caller's own unanswered enquiry
// @Tags Enquiries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /enquiries/{id} [delete]
func (h *EnquiryHandler) Delete(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid enquiry ID")
	}

	if err := h.enquiryService.Delete(c.Context(), nric, uint(id)); err != nil {
		return h.mapEnquiryError(c, err, "Failed to delete enquiry")
	}

	return response.Success(c, "Enquiry deleted", nil)
}

// Reply records a staff answer
// @Summary Reply to enquiry
// @Description Record a staff answer on an enquiry
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Param body body EnquiryTextRequest true "Reply text"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /enquiries/{id}/reply [put]
func (h *EnquiryHandler) Reply(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid enquiry ID")
	}

	var req EnquiryTextRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	staff, err := h.userService.GetProfile(c.Context(), nric)
	if err != nil {
		return response.InternalServerError(c, "Failed to reply to enquiry")
	}

	enquiry, err := h.enquiryService.Reply(c.Context(), staff, uint(id), req.Text)
	if err != nil {
		return h.mapEnquiryError(c, err, "Failed to reply to enquiry")
	}

	return response.Success(c, "Reply recorded", fiber.Map{
		"enquiry": enquiry,
	})
}

func (h *EnquiryHandler) mapEnquiryError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrEnquiryNotFound):
		return response.NotFound(c, "Enquiry not found")
	case errors.Is(err, services.ErrEnquiryAnswered):
		return response.Conflict(c, "Enquiry has already been answered")
	case errors.Is(err, services.ErrEmptyEnquiry):
		return response.BadRequest(c, "Enquiry text cannot be empty")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You cannot modify this enquiry")
	case errors.Is(err, services.ErrProjectNotFound):
		return response.NotFound(c, "Project not found")
	default:
		return response.InternalServerError(c, fallback)
	}
}
