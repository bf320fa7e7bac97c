package handlers

import (
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"timesheet-service/internal/auth"
	"timesheet-service/internal/services"
)

const dateLayout = "2006-01-02"

type TimesheetHandler struct {
	timesheetService *services.TimesheetService
}

func NewTimesheetHandler(timesheetService *services.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{timesheetService: timesheetService}
}

type logTimeRequest struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Date        string    `json:"date"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description"`
}

type recurringRequest struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description"`
	Dates       []string  `json:"dates"`
}

type updateEntryRequest struct {
	Hours       *float64 `json:"hours"`
	Description *string  `json:"description"`
}

// validHours checks the edge constraint on a single value: [0.5, 7] in 0.5
// steps. The day-total ceiling is the service's concern, not ours.
func validHours(hours float64) bool {
	if hours < 0.5 || hours > 7 {
		return false
	}
	ticks := hours * 2
	return ticks == math.Trunc(ticks)
}

// LogTime creates a timesheet entry
// @Summary Log time on a project
// @Description Create a timesheet entry for the authenticated user on a calendar day
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body logTimeRequest true "Entry data"
// @Success 201 {object} map[string]interface{} "Entry created"
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 409 {object} map[string]interface{} "Period locked"
// @Failure 422 {object} map[string]interface{} "Daily limit exceeded"
// @Router /entries [post]
func (h *TimesheetHandler) LogTime(c *fiber.Ctx) error {
	var req logTimeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing entry data: %v", err)
		return badRequest(c, "Invalid request format", err)
	}
	if req.ProjectID == uuid.Nil {
		return badRequest(c, "project_id is required", nil)
	}
	if !validHours(req.Hours) {
		return badRequest(c, "hours must be between 0.5 and 7 in 0.5 steps", nil)
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return badRequest(c, "Invalid date, expected YYYY-MM-DD", err)
	}

	id, err := h.timesheetService.LogTime(auth.FromContext(c), services.LogTimeInput{
		ProjectID:   req.ProjectID,
		Date:        date,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id.String()})
}

// LogRecurringTime creates entries for several dates at once
// @Summary Log recurring time
// @Description Create the same entry on several dates; validated and committed all-or-nothing
// @Tags entries
// @Accept json
// @Produce json
// @Param batch body recurringRequest true "Recurring entry data"
// @Success 201 {object} map[string]interface{} "Entries created"
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 409 {object} map[string]interface{} "Period locked"
// @Failure 422 {object} map[string]interface{} "Daily limit exceeded"
// @Router /entries/recurring [post]
func (h *TimesheetHandler) LogRecurringTime(c *fiber.Ctx) error {
	var req recurringRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing recurring entry data: %v", err)
		return badRequest(c, "Invalid request format", err)
	}
	if req.ProjectID == uuid.Nil {
		return badRequest(c, "project_id is required", nil)
	}
	if !validHours(req.Hours) {
		return badRequest(c, "hours must be between 0.5 and 7 in 0.5 steps", nil)
	}
	dates := make([]time.Time, len(req.Dates))
	for i, raw := range req.Dates {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return badRequest(c, "Invalid date, expected YYYY-MM-DD", err)
		}
		dates[i] = date
	}

	count, err := h.timesheetService.LogRecurringTime(auth.FromContext(c), services.RecurringInput{
		ProjectID:   req.ProjectID,
		Hours:       req.Hours,
		Description: req.Description,
		Dates:       dates,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"count": count})
}

// UpdateEntry updates an entry's hours and/or description
// @Summary Update a timesheet entry
// @Description Update hours and/or description of an owned entry while its period is unlocked
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID" Format(uuid)
// @Param entry body updateEntryRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Entry updated"
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Failure 409 {object} map[string]interface{} "Period locked"
// @Failure 422 {object} map[string]interface{} "Daily limit exceeded"
// @Router /entries/{id} [put]
func (h *TimesheetHandler) UpdateEntry(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	var req updateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing entry update data: %v", err)
		return badRequest(c, "Invalid request format", err)
	}
	if req.Hours != nil && !validHours(*req.Hours) {
		return badRequest(c, "hours must be between 0.5 and 7 in 0.5 steps", nil)
	}

	err = h.timesheetService.UpdateEntry(auth.FromContext(c), entryID, services.UpdateEntryInput{
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry updated successfully", "id": entryID.String()})
}

// DeleteEntry deletes an entry
// @Summary Delete a timesheet entry
// @Description Delete an owned entry while its period is unlocked
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Entry deleted"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Failure 409 {object} map[string]interface{} "Period locked"
// @Router /entries/{id} [delete]
func (h *TimesheetHandler) DeleteEntry(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	if err := h.timesheetService.DeleteEntry(auth.FromContext(c), entryID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry deleted successfully", "id": entryID.String()})
}

// ListEntries returns the actor's entries for a month
// @Summary List own entries for a month
// @Description Return the authenticated user's entries within the anchor month; unauthenticated callers get an empty list
// @Tags entries
// @Accept json
// @Produce json
// @Param month query string false "Month anchor (YYYY-MM), defaults to current month"
// @Success 200 {array} models.TimesheetEntry "Entries"
// @Router /entries [get]
func (h *TimesheetHandler) ListEntries(c *fiber.Ctx) error {
	anchor := time.Now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			return badRequest(c, "Invalid month, expected YYYY-MM", err)
		}
		anchor = parsed
	}
	entries, err := h.timesheetService.ListEntries(auth.FromContext(c), anchor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}
