package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"timesheet-service/internal/models"
)

// HolidayRepository stores the non-working dates used by workable-day
// reporting.
type HolidayRepository interface {
	Create(holiday *models.Holiday) error
	Delete(id uuid.UUID) error
	ListByYear(year int) ([]models.Holiday, error)
	FindBetween(from, to time.Time) ([]models.Holiday, error)
}

type HolidayRepositoryImpl struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) *HolidayRepositoryImpl {
	return &HolidayRepositoryImpl{db: db}
}

func (r *HolidayRepositoryImpl) Create(holiday *models.Holiday) error {
	holiday.Year = holiday.Date.Year()
	return errors.Wrap(r.db.Create(holiday).Error, "create holiday")
}

func (r *HolidayRepositoryImpl) Delete(id uuid.UUID) error {
	return errors.Wrap(r.db.Delete(&models.Holiday{}, "id = ?", id).Error, "delete holiday")
}

func (r *HolidayRepositoryImpl) ListByYear(year int) ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := r.db.Where("year = ?", year).Order("date ASC").Find(&holidays).Error
	return holidays, errors.Wrap(err, "list holidays")
}

func (r *HolidayRepositoryImpl) FindBetween(from, to time.Time) ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := r.db.Where("date >= ? AND date < ?", from, to).Find(&holidays).Error
	return holidays, errors.Wrap(err, "find holidays")
}
