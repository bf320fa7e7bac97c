package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"timesheet-service/internal/models"
	"timesheet-service/internal/services"
)

// AdminHandler exposes the ADMIN-only maintenance surface. The role check
// sits on the route group, not in here.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// CreateProject creates a new project
// @Summary Create a project
// @Tags admin
// @Accept json
// @Produce json
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project "Project created"
// @Failure 400 {object} map[string]interface{} "Invalid project data"
// @Router /admin/projects [post]
func (h *AdminHandler) CreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		log.Printf("Error parsing project data: %v", err)
		return badRequest(c, "Invalid request format", err)
	}
	if project.Code == "" || project.Name == "" {
		return badRequest(c, "code and name are required", nil)
	}
	if err := h.adminService.CreateProject(&project); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject updates a project's display fields
// @Summary Update a project
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Param project body models.Project true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /admin/projects/{id} [put]
func (h *AdminHandler) UpdateProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	existing, err := h.adminService.GetProject(projectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   true,
			"message": "Project not found",
			"id":      projectID.String(),
		})
	}
	var updated models.Project
	if err := c.BodyParser(&updated); err != nil {
		log.Printf("Error parsing project update data: %v", err)
		return badRequest(c, "Invalid request format", err)
	}

	// Update only allowed fields
	existing.Code = updated.Code
	existing.Name = updated.Name
	existing.Active = updated.Active

	if err := h.adminService.UpdateProject(existing); err != nil {
		return respondError(c, err)
	}
	return c.JSON(existing)
}

// DeleteProject deletes a project and its assignments
// @Summary Delete a project
// @Tags admin
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Project deleted"
// @Router /admin/projects/{id} [delete]
func (h *AdminHandler) DeleteProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	if err := h.adminService.DeleteProject(projectID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project deleted successfully", "id": projectID.String()})
}

// ListProjects returns the full project catalog
// @Summary List all projects
// @Tags admin
// @Produce json
// @Success 200 {array} models.Project "Projects"
// @Router /admin/projects [get]
func (h *AdminHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.adminService.ListProjects()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

// CreateHoliday registers a non-working date
// @Summary Create a holiday
// @Tags admin
// @Accept json
// @Produce json
// @Param holiday body models.Holiday true "Holiday data"
// @Success 201 {object} models.Holiday "Holiday created"
// @Router /admin/holidays [post]
func (h *AdminHandler) CreateHoliday(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Date string `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing holiday data: %v", err)
		return badRequest(c, "Invalid request format", err)
	}
	if req.Name == "" {
		return badRequest(c, "name is required", nil)
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return badRequest(c, "Invalid date, expected YYYY-MM-DD", err)
	}
	holiday := &models.Holiday{Name: req.Name, Date: date}
	if err := h.adminService.CreateHoliday(holiday); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(holiday)
}

// DeleteHoliday removes a holiday
// @Summary Delete a holiday
// @Tags admin
// @Produce json
// @Param id path string true "Holiday ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Holiday deleted"
// @Router /admin/holidays/{id} [delete]
func (h *AdminHandler) DeleteHoliday(c *fiber.Ctx) error {
	holidayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid UUID", err)
	}
	if err := h.adminService.DeleteHoliday(holidayID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Holiday deleted successfully", "id": holidayID.String()})
}

// ListHolidays returns the holidays of a year
// @Summary List holidays
// @Tags admin
// @Produce json
// @Param year query int false "Year, defaults to current"
// @Success 200 {array} models.Holiday "Holidays"
// @Router /admin/holidays [get]
func (h *AdminHandler) ListHolidays(c *fiber.Ctx) error {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid year", err)
		}
		year = parsed
	}
	holidays, err := h.adminService.ListHolidays(year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(holidays)
}

// AssignProject links a user to a project
// @Summary Assign a user to a project
// @Tags admin
// @Accept json
// @Produce json
// @Param assignment body models.ProjectAssignment true "Assignment data"
// @Success 201 {object} models.ProjectAssignment "Assignment created"
// @Router /admin/assignments [post]
func (h *AdminHandler) AssignProject(c *fiber.Ctx) error {
	var assignment models.ProjectAssignment
	if err := c.BodyParser(&assignment); err != nil {
		log.Printf("Error parsing assignment data: %v", err)
		return badRequest(c, "Invalid request format", err)
	}
	if assignment.UserID == uuid.Nil || assignment.ProjectID == uuid.Nil {
		return badRequest(c, "user_id and project_id are required", nil)
	}
	if err := h.adminService.AssignProject(&assignment); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// UnassignProject removes a user-project link
// @Summary Remove a project assignment
// @Tags admin
// @Produce json
// @Param userId path string true "User ID" Format(uuid)
// @Param projectId path string true "Project ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Assignment removed"
// @Router /admin/assignments/{userId}/{projectId} [delete]
func (h *AdminHandler) UnassignProject(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user UUID", err)
	}
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return badRequest(c, "Invalid project UUID", err)
	}
	if err := h.adminService.UnassignProject(userID, projectID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Assignment removed successfully"})
}

// ListAssignments returns all user-project links
// @Summary List assignments
// @Tags admin
// @Produce json
// @Success 200 {array} models.ProjectAssignment "Assignments"
// @Router /admin/assignments [get]
func (h *AdminHandler) ListAssignments(c *fiber.Ctx) error {
	assignments, err := h.adminService.ListAssignments()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(assignments)
}

// ListUsers returns all users
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {array} models.User "Users"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
