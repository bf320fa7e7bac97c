package repository

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"timesheet-service/internal/models"
)

// AssignmentRepository manages the user-project links driving PM visibility.
type AssignmentRepository interface {
	Create(assignment *models.ProjectAssignment) error
	Delete(userID, projectID uuid.UUID) error
	List() ([]models.ProjectAssignment, error)
	ProjectIDsForUser(userID uuid.UUID) ([]uuid.UUID, error)
}

type AssignmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepositoryImpl {
	return &AssignmentRepositoryImpl{db: db}
}

func (r *AssignmentRepositoryImpl) Create(assignment *models.ProjectAssignment) error {
	return errors.Wrap(r.db.Create(assignment).Error, "create assignment")
}

func (r *AssignmentRepositoryImpl) Delete(userID, projectID uuid.UUID) error {
	return errors.Wrap(
		r.db.Where("user_id = ? AND project_id = ?", userID, projectID).
			Delete(&models.ProjectAssignment{}).Error,
		"delete assignment")
}

func (r *AssignmentRepositoryImpl) List() ([]models.ProjectAssignment, error) {
	var assignments []models.ProjectAssignment
	err := r.db.Preload("User").Preload("Project").Find(&assignments).Error
	return assignments, errors.Wrap(err, "list assignments")
}

// ProjectIDsForUser returns the project ids the user is assigned to; the
// input of the PM visibility scope.
func (r *AssignmentRepositoryImpl) ProjectIDsForUser(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.ProjectAssignment{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &ids).Error
	return ids, errors.Wrap(err, "assigned project ids")
}
