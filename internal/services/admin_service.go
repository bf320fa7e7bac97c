package services

import (
	"github.com/google/uuid"

	"timesheet-service/internal/models"
	"timesheet-service/internal/repository"
)

// AdminService covers the administrative maintenance of projects, holidays
// and assignments. Route-level role checks keep it ADMIN-only.
type AdminService struct {
	projects    repository.ProjectRepository
	holidays    repository.HolidayRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
}

func NewAdminService(
	projects repository.ProjectRepository,
	holidays repository.HolidayRepository,
	assignments repository.AssignmentRepository,
	users repository.UserRepository,
) *AdminService {
	return &AdminService{
		projects:    projects,
		holidays:    holidays,
		assignments: assignments,
		users:       users,
	}
}

func (s *AdminService) CreateProject(project *models.Project) error {
	return s.projects.Create(project)
}

func (s *AdminService) GetProject(id uuid.UUID) (*models.Project, error) {
	return s.projects.GetByID(id)
}

func (s *AdminService) UpdateProject(project *models.Project) error {
	return s.projects.Update(project)
}

func (s *AdminService) DeleteProject(id uuid.UUID) error {
	return s.projects.Delete(id)
}

func (s *AdminService) ListProjects() ([]models.Project, error) {
	return s.projects.List()
}

func (s *AdminService) CreateHoliday(holiday *models.Holiday) error {
	return s.holidays.Create(holiday)
}

func (s *AdminService) DeleteHoliday(id uuid.UUID) error {
	return s.holidays.Delete(id)
}

func (s *AdminService) ListHolidays(year int) ([]models.Holiday, error) {
	return s.holidays.ListByYear(year)
}

func (s *AdminService) AssignProject(assignment *models.ProjectAssignment) error {
	return s.assignments.Create(assignment)
}

func (s *AdminService) UnassignProject(userID, projectID uuid.UUID) error {
	return s.assignments.Delete(userID, projectID)
}

func (s *AdminService) ListAssignments() ([]models.ProjectAssignment, error) {
	return s.assignments.List()
}

func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.users.List()
}
