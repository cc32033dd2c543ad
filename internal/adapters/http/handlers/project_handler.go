package handlers

import (
	"errors"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"
	"hdb-bto-portal/internal/core/services"
	"hdb-bto-portal/internal/pkg/pagination"
	"hdb-bto-portal/internal/pkg/response"
	"hdb-bto-portal/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles project listing endpoints
type ProjectHandler struct {
	projectService   *services.ProjectService
	inventoryService *services.InventoryService
	userService      *services.UserService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(
	projectService *services.ProjectService,
	inventoryService *services.InventoryService,
	userService *services.UserService,
) *ProjectHandler {
	return &ProjectHandler{
		projectService:   projectService,
		inventoryService: inventoryService,
		userService:      userService,
	}
}

// List lists projects visible to the caller
// @Summary List projects
// @Description List projects the caller can see. Managers see everything;
// @Description applicants and officers see open listings they are eligible for.
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	var (
		projects []*models.Project
		err      error
	)
	if role == string(domain.RoleManager) {
		projects, err = h.projectService.ListAll(c.Context())
	} else {
		var viewer *models.User
		viewer, err = h.userService.GetProfile(c.Context(), nric)
		if err == nil {
			projects, err = h.projectService.ListOpenFor(c.Context(), viewer)
		}
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	params := pagination.GetParams(c)
	total := int64(len(projects))
	start, end := params.Bounds(len(projects))

	page := make([]*models.ProjectResponse, 0, end-start)
	for _, p := range projects[start:end] {
		page = append(page, p.ToResponse())
	}

	return response.Success(c, "Projects retrieved", pagination.NewResponse(page, params, total))
}

// ListMine lists the projects the caller manages
// @Summary List managed projects
// @Description List the projects the acting manager handles
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /projects/mine [get]
func (h *ProjectHandler) ListMine(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	projects, err := h.projectService.ListByManager(c.Context(), nric)
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	return response.Success(c, "Projects retrieved", projectsToResponses(projects))
}

// Get returns one project
// @Summary Get project
// @Description Get a project listing by ID
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	project, err := h.projectService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to get project")
	}

	return response.Success(c, "Project retrieved", fiber.Map{
		"project": project.ToResponse(),
	})
}

// Availability reports per-flat-type availability for a project
// @Summary Project availability
// @Description Report available, booked and original unit counts per flat type
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/availability [get]
func (h *ProjectHandler) Availability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	report, err := h.inventoryService.Availability(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to get availability")
	}

	return response.Success(c, "Availability retrieved", report)
}

// Create opens a new project listing
// @Summary Create project
// @Description Create a new project listing under the acting manager
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateProjectInput true "Project data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	project, err := h.projectService.Create(c.Context(), nric, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Dates must use the d/M/yy format")
		case errors.Is(err, services.ErrInvalidWindow):
			return response.BadRequest(c, "Closing date cannot be before opening date")
		case errors.Is(err, services.ErrInvalidSlotCount):
			return response.BadRequest(c, "Officer slots must be between 1 and 10")
		case errors.Is(err, services.ErrManagerWindowBusy):
			return response.Conflict(c, "You already handle a project in this period")
		default:
			return response.InternalServerError(c, "Failed to create project")
		}
	}

	return response.Created(c, "Project created", fiber.Map{
		"project": project.ToResponse(),
	})
}

// Update edits a project listing
// @Summary Update project
// @Description Edit a project listing's mutable fields
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param body body services.UpdateProjectInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	var input services.UpdateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	project, err := h.projectService.Update(c.Context(), nric, id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrNotProjectManager):
			return response.Forbidden(c, "Project is managed by another manager")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Dates must use the d/M/yy format")
		case errors.Is(err, services.ErrInvalidWindow):
			return response.BadRequest(c, "Closing date cannot be before opening date")
		case errors.Is(err, services.ErrInvalidSlotCount):
			return response.BadRequest(c, "Officer slots must be between 1 and 10")
		case errors.Is(err, services.ErrManagerWindowBusy):
			return response.Conflict(c, "You already handle a project in this period")
		default:
			return response.InternalServerError(c, "Failed to update project")
		}
	}

	return response.Success(c, "Project updated", fiber.Map{
		"project": project.ToResponse(),
	})
}

// ToggleVisibility flips a listing between open and hidden
// @Summary Toggle visibility
// @Description Toggle a project listing between open and hidden
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/visibility [put]
func (h *ProjectHandler) ToggleVisibility(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	project, err := h.projectService.ToggleVisibility(c.Context(), nric, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrNotProjectManager):
			return response.Forbidden(c, "Project is managed by another manager")
		default:
			return response.InternalServerError(c, "Failed to toggle visibility")
		}
	}

	return response.Success(c, "Project visibility toggled", fiber.Map{
		"project": project.ToResponse(),
	})
}

// Delete removes a project listing
// @Summary Delete project
// @Description Delete a project listing and renumber the survivors
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	if err := h.projectService.Delete(c.Context(), nric, id); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrNotProjectManager):
			return response.Forbidden(c, "Project is managed by another manager")
		default:
			return response.InternalServerError(c, "Failed to delete project")
		}
	}

	return response.Success(c, "Project deleted", nil)
}

func projectsToResponses(projects []*models.Project) []*models.ProjectResponse {
	out := make([]*models.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ToResponse())
	}
	return out
}
