package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"timesheet-service/internal/domain"
	"timesheet-service/internal/models"
	"timesheet-service/internal/policy"
	"timesheet-service/internal/repository"
)

// fakeEntryRepo is an in-memory EntryRepository. It does not simulate
// rollback: the service must not create anything before validation passes,
// and the tests assert exactly that.
type fakeEntryRepo struct {
	mu          sync.Mutex
	entries     map[uuid.UUID]*models.TimesheetEntry
	lockedReads int
	txCount     int
	createErr   error
}

func newFakeEntryRepo(seed ...*models.TimesheetEntry) *fakeEntryRepo {
	repo := &fakeEntryRepo{entries: make(map[uuid.UUID]*models.TimesheetEntry)}
	for _, e := range seed {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		clone := *e
		repo.entries[e.ID] = &clone
	}
	return repo
}

func (f *fakeEntryRepo) Create(entry *models.TimesheetEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	clone := *entry
	f.entries[entry.ID] = &clone
	return nil
}

func (f *fakeEntryRepo) GetByID(id uuid.UUID) (*models.TimesheetEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *entry
	return &clone, nil
}

func (f *fakeEntryRepo) Update(entry *models.TimesheetEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *entry
	f.entries[entry.ID] = &clone
	return nil
}

func (f *fakeEntryRepo) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
	return nil
}

func (f *fakeEntryRepo) FindByUserAndDay(userID uuid.UUID, dayStart, dayEnd time.Time) ([]models.TimesheetEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter(func(e *models.TimesheetEntry) bool {
		return e.UserID == userID && !e.Date.Before(dayStart) && e.Date.Before(dayEnd)
	}), nil
}

func (f *fakeEntryRepo) FindByUserAndDayForUpdate(userID uuid.UUID, dayStart, dayEnd time.Time) ([]models.TimesheetEntry, error) {
	f.mu.Lock()
	f.lockedReads++
	f.mu.Unlock()
	return f.FindByUserAndDay(userID, dayStart, dayEnd)
}

func (f *fakeEntryRepo) FindByUserBetween(userID uuid.UUID, from, to time.Time) ([]models.TimesheetEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter(func(e *models.TimesheetEntry) bool {
		return e.UserID == userID && !e.Date.Before(from) && e.Date.Before(to)
	}), nil
}

func (f *fakeEntryRepo) FindScoped(scope policy.EntryScope, from, to time.Time) ([]models.TimesheetEntry, error) {
	if scope.Empty {
		return []models.TimesheetEntry{}, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter(func(e *models.TimesheetEntry) bool {
		if e.Date.Before(from) || !e.Date.Before(to) {
			return false
		}
		if scope.UserID != nil && e.UserID != *scope.UserID {
			return false
		}
		if scope.ProjectIDs != nil {
			found := false
			for _, id := range scope.ProjectIDs {
				if e.ProjectID == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}), nil
}

func (f *fakeEntryRepo) Transaction(fn func(tx repository.EntryRepository) error) error {
	f.mu.Lock()
	f.txCount++
	f.mu.Unlock()
	return fn(f)
}

func (f *fakeEntryRepo) filter(keep func(*models.TimesheetEntry) bool) []models.TimesheetEntry {
	var out []models.TimesheetEntry
	for _, e := range f.entries {
		if keep(e) {
			out = append(out, *e)
		}
	}
	return out
}

func (f *fakeEntryRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// dayTotal sums the persisted hours for a user and day, in ticks.
func (f *fakeEntryRepo) dayTotal(userID uuid.UUID, day time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, e := range f.entries {
		if e.UserID == userID && e.Date.Equal(day) {
			total += e.Ticks()
		}
	}
	return total
}

type invalidation struct {
	userID uuid.UUID
	day    time.Time
}

type spyInvalidator struct {
	mu    sync.Mutex
	calls []invalidation
}

func (s *spyInvalidator) InvalidateCalendar(userID uuid.UUID, day time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, invalidation{userID: userID, day: day})
}

func (s *spyInvalidator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Func-field mocks for the report service collaborators.

type projectRepoMock struct {
	ListFunc         func() ([]models.Project, error)
	ListAssignedFunc func(userID uuid.UUID) ([]models.Project, error)
}

func (m *projectRepoMock) Create(*models.Project) error               { return nil }
func (m *projectRepoMock) GetByID(uuid.UUID) (*models.Project, error) { return nil, nil }
func (m *projectRepoMock) Update(*models.Project) error               { return nil }
func (m *projectRepoMock) Delete(uuid.UUID) error                     { return nil }

func (m *projectRepoMock) List() ([]models.Project, error) {
	return m.ListFunc()
}

func (m *projectRepoMock) ListAssigned(userID uuid.UUID) ([]models.Project, error) {
	return m.ListAssignedFunc(userID)
}

type assignmentRepoMock struct {
	ProjectIDsForUserFunc func(userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *assignmentRepoMock) Create(*models.ProjectAssignment) error { return nil }
func (m *assignmentRepoMock) Delete(uuid.UUID, uuid.UUID) error      { return nil }
func (m *assignmentRepoMock) List() ([]models.ProjectAssignment, error) {
	return nil, nil
}

func (m *assignmentRepoMock) ProjectIDsForUser(userID uuid.UUID) ([]uuid.UUID, error) {
	return m.ProjectIDsForUserFunc(userID)
}

type holidayRepoMock struct {
	FindBetweenFunc func(from, to time.Time) ([]models.Holiday, error)
}

func (m *holidayRepoMock) Create(*models.Holiday) error                   { return nil }
func (m *holidayRepoMock) Delete(uuid.UUID) error                         { return nil }
func (m *holidayRepoMock) ListByYear(int) ([]models.Holiday, error)       { return nil, nil }
func (m *holidayRepoMock) FindBetween(from, to time.Time) ([]models.Holiday, error) {
	return m.FindBetweenFunc(from, to)
}
