package handlers

import (
	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/config"
	"bookshelf/internal/core/services"
	"bookshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles librarian reports
type ReportHandler struct {
	reportService *services.ReportService
	cfg           *config.Config
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		cfg:           cfg,
	}
}

// Overdue handles the overdue loans report
// @Summary Overdue loans
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/reports/overdue [get]
func (h *ReportHandler) Overdue(c *fiber.Ctx) error {
	today := h.cfg.Now()
	rows, err := h.reportService.Overdue(c.Context(), middleware.Actor(c), today)
	if err != nil {
		return respondError(c, err, "Failed to load overdue loans")
	}

	return response.Success(c, "Overdue loans retrieved successfully", toOverdueResponses(rows, today))
}

// Summary handles the dashboard counters
// @Summary Library summary
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reportService.Summary(c.Context(), middleware.Actor(c), h.cfg.Now())
	if err != nil {
		return respondError(c, err, "Failed to load summary")
	}

	return response.Success(c, "Summary retrieved successfully", summary)
}
