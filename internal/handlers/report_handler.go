package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"timesheet-service/internal/auth"
	"timesheet-service/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TeamEntries returns role-scoped entries for a month
// @Summary Team entry report
// @Description Return the entries visible to the actor's role for a month, optionally filtered by project and user
// @Tags reports
// @Accept json
// @Produce json
// @Param month query string false "Month anchor (YYYY-MM), defaults to current month"
// @Param project_id query string false "Project filter" Format(uuid)
// @Param user_id query string false "User filter" Format(uuid)
// @Success 200 {array} models.TimesheetEntry "Entries in scope"
// @Failure 400 {object} map[string]interface{} "Invalid filter"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /reports/entries [get]
func (h *ReportHandler) TeamEntries(c *fiber.Ctx) error {
	filter := services.ReportFilter{Month: time.Now()}
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			return badRequest(c, "Invalid month, expected YYYY-MM", err)
		}
		filter.Month = parsed
	}
	if raw := c.Query("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid project UUID", err)
		}
		filter.ProjectID = &id
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid user UUID", err)
		}
		filter.UserID = &id
	}

	entries, err := h.reportService.TeamEntries(auth.FromContext(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// WorkableDays returns the workable day count for a month
// @Summary Workable days in a month
// @Description Count the weekdays of a month minus its holidays
// @Tags reports
// @Accept json
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} map[string]interface{} "Workable day count"
// @Failure 400 {object} map[string]interface{} "Invalid year or month"
// @Router /reports/workable-days [get]
func (h *ReportHandler) WorkableDays(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		return badRequest(c, "Invalid year", err)
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		return badRequest(c, "Invalid month", err)
	}

	days, err := h.reportService.WorkableDays(year, time.Month(month))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"year": year, "month": month, "workable_days": days})
}

// ListProjects returns the projects visible to the actor
// @Summary List projects in scope
// @Description Full catalog for GM/ADMIN, assigned projects for everyone else
// @Tags reports
// @Accept json
// @Produce json
// @Success 200 {array} models.Project "Projects"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /projects [get]
func (h *ReportHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.reportService.ListProjects(auth.FromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}
