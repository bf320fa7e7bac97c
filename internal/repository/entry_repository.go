package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"timesheet-service/internal/domain"
	"timesheet-service/internal/models"
	"timesheet-service/internal/policy"
)

// EntryRepository defines the persistence operations of the timesheet core.
type EntryRepository interface {
	Create(entry *models.TimesheetEntry) error
	GetByID(id uuid.UUID) (*models.TimesheetEntry, error)
	Update(entry *models.TimesheetEntry) error
	Delete(id uuid.UUID) error
	FindByUserAndDay(userID uuid.UUID, dayStart, dayEnd time.Time) ([]models.TimesheetEntry, error)
	// FindByUserAndDayForUpdate locks the user's rows for the day. Only
	// meaningful inside Transaction; two concurrent writers for the same
	// (user, day) serialize on it, which is what keeps the daily ceiling
	// race-free.
	FindByUserAndDayForUpdate(userID uuid.UUID, dayStart, dayEnd time.Time) ([]models.TimesheetEntry, error)
	FindByUserBetween(userID uuid.UUID, from, to time.Time) ([]models.TimesheetEntry, error)
	FindScoped(scope policy.EntryScope, from, to time.Time) ([]models.TimesheetEntry, error)
	// Transaction runs fn against a repository bound to a single database
	// transaction; returning an error rolls everything back.
	Transaction(fn func(tx EntryRepository) error) error
}

// EntryRepositoryImpl provides methods to interact with the TimesheetEntry
// model in the database.
type EntryRepositoryImpl struct {
	db *gorm.DB
}

// NewEntryRepository creates a new EntryRepositoryImpl instance with the
// provided GORM database connection.
func NewEntryRepository(db *gorm.DB) *EntryRepositoryImpl {
	return &EntryRepositoryImpl{db: db}
}

// Create creates a new TimesheetEntry in the database.
func (r *EntryRepositoryImpl) Create(entry *models.TimesheetEntry) error {
	return errors.Wrap(r.db.Create(entry).Error, "create entry")
}

// GetByID retrieves a TimesheetEntry by its ID from the database.
func (r *EntryRepositoryImpl) GetByID(id uuid.UUID) (*models.TimesheetEntry, error) {
	var entry models.TimesheetEntry
	err := r.db.First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get entry")
	}
	return &entry, nil
}

// Update updates an existing TimesheetEntry in the database.
func (r *EntryRepositoryImpl) Update(entry *models.TimesheetEntry) error {
	return errors.Wrap(r.db.Save(entry).Error, "update entry")
}

// Delete deletes a TimesheetEntry by its ID from the database.
func (r *EntryRepositoryImpl) Delete(id uuid.UUID) error {
	return errors.Wrap(r.db.Delete(&models.TimesheetEntry{}, "id = ?", id).Error, "delete entry")
}

// FindByUserAndDay retrieves all entries owned by userID within [dayStart, dayEnd).
func (r *EntryRepositoryImpl) FindByUserAndDay(userID uuid.UUID, dayStart, dayEnd time.Time) ([]models.TimesheetEntry, error) {
	var entries []models.TimesheetEntry
	err := r.db.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Find(&entries).Error
	return entries, errors.Wrap(err, "find entries for day")
}

// FindByUserAndDayForUpdate is FindByUserAndDay with SELECT ... FOR UPDATE.
func (r *EntryRepositoryImpl) FindByUserAndDayForUpdate(userID uuid.UUID, dayStart, dayEnd time.Time) ([]models.TimesheetEntry, error) {
	var entries []models.TimesheetEntry
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Find(&entries).Error
	return entries, errors.Wrap(err, "find entries for day (locked)")
}

// FindByUserBetween retrieves all entries owned by userID within [from, to),
// joined with their project's display fields.
func (r *EntryRepositoryImpl) FindByUserBetween(userID uuid.UUID, from, to time.Time) ([]models.TimesheetEntry, error) {
	var entries []models.TimesheetEntry
	err := r.db.
		Preload("Project").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC, created_at ASC").
		Find(&entries).Error
	return entries, errors.Wrap(err, "find entries for month")
}

// FindScoped retrieves entries within [from, to) restricted by the resolved
// visibility scope. An empty scope short-circuits to no rows.
func (r *EntryRepositoryImpl) FindScoped(scope policy.EntryScope, from, to time.Time) ([]models.TimesheetEntry, error) {
	if scope.Empty {
		return []models.TimesheetEntry{}, nil
	}
	query := r.db.
		Preload("Project").
		Where("date >= ? AND date < ?", from, to)
	if scope.UserID != nil {
		query = query.Where("user_id = ?", *scope.UserID)
	}
	if scope.ProjectIDs != nil {
		query = query.Where("project_id IN ?", scope.ProjectIDs)
	}
	var entries []models.TimesheetEntry
	err := query.Order("date ASC, created_at ASC").Find(&entries).Error
	return entries, errors.Wrap(err, "find scoped entries")
}

// Transaction runs fn against a repository bound to a database transaction.
func (r *EntryRepositoryImpl) Transaction(fn func(tx EntryRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&EntryRepositoryImpl{db: tx})
	})
}
