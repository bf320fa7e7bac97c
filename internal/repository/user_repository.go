package repository

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"timesheet-service/internal/models"
)

// UserRepository reads the user reference data owned by the identity layer.
type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	List() ([]models.User, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	return &user, nil
}

func (r *UserRepositoryImpl) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("name ASC").Find(&users).Error
	return users, errors.Wrap(err, "list users")
}
