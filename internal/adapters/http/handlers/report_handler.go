package handlers

import (
	"errors"
	"strings"

	"hdb-bto-portal/internal/core/domain"
	"hdb-bto-portal/internal/core/services"
	"hdb-bto-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles booking receipt and report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Receipt builds a booking receipt for a booked applicant
// @Summary Booking receipt
// @Description Generate a booking receipt for a booked applicant
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param nric path string true "Applicant NRIC"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reports/receipt/{nric} [get]
func (h *ReportHandler) Receipt(c *fiber.Ctx) error {
	nric := strings.ToUpper(c.Params("nric"))

	receipt, err := h.reportService.Receipt(c.Context(), nric)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Applicant not found")
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, domain.ErrApplicationNotSuccessful):
			return response.UnprocessableEntity(c, "Applicant has not booked a flat")
		default:
			return response.InternalServerError(c, "Failed to generate receipt")
		}
	}

	return response.Success(c, "Receipt generated", receipt)
}

// Bookings lists booked applicants across the manager's projects
// @Summary Booking report
// @Description List booked applicants across managed projects with optional filters
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param marital_status query string false "Filter by marital status"
// @Param flat_type query string false "Filter by flat type"
// @Param project_id query int false "Filter by project"
// @Success 200 {object} response.Response
// @Router /reports/bookings [get]
func (h *ReportHandler) Bookings(c *fiber.Ctx) error {
	nric, ok := c.Locals("nric").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	filter := services.ReportFilter{
		MaritalStatus: c.Query("marital_status"),
		FlatType:      c.Query("flat_type"),
		ProjectID:     c.QueryInt("project_id"),
	}

	rows, err := h.reportService.BookingReport(c.Context(), nric, filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	return response.Success(c, "Report generated", rows)
}
