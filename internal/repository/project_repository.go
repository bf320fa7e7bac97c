package repository

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"timesheet-service/internal/models"
)

// ProjectRepository provides access to the Project model and the
// assignment-scoped project listings.
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
	List() ([]models.Project, error)
	ListAssigned(userID uuid.UUID) ([]models.Project, error)
}

// ProjectRepositoryImpl provides methods to interact with the Project model
// in the database.
type ProjectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepositoryImpl instance with the
// provided GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepositoryImpl {
	return &ProjectRepositoryImpl{db: db}
}

// Create creates a new Project in the database.
func (r *ProjectRepositoryImpl) Create(project *models.Project) error {
	return errors.Wrap(r.db.Create(project).Error, "create project")
}

// GetByID retrieves a Project by its ID from the database.
func (r *ProjectRepositoryImpl) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, errors.Wrap(err, "get project")
	}
	return &project, nil
}

// Update updates an existing Project in the database.
func (r *ProjectRepositoryImpl) Update(project *models.Project) error {
	return errors.Wrap(r.db.Save(project).Error, "update project")
}

// Delete deletes a Project by its ID from the database, removing its
// assignments first.
func (r *ProjectRepositoryImpl) Delete(id uuid.UUID) error {
	if err := r.db.Where("project_id = ?", id).Delete(&models.ProjectAssignment{}).Error; err != nil {
		return errors.Wrap(err, "delete project assignments")
	}
	return errors.Wrap(r.db.Delete(&models.Project{}, "id = ?", id).Error, "delete project")
}

// List retrieves all Projects from the database.
func (r *ProjectRepositoryImpl) List() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Order("code ASC").Find(&projects).Error
	return projects, errors.Wrap(err, "list projects")
}

// ListAssigned retrieves the Projects the user has an active assignment for.
func (r *ProjectRepositoryImpl) ListAssigned(userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Joins("JOIN project_assignments ON project_assignments.project_id = projects.id").
		Where("project_assignments.user_id = ?", userID).
		Order("projects.code ASC").
		Find(&projects).Error
	return projects, errors.Wrap(err, "list assigned projects")
}
