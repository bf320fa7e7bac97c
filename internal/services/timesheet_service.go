package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"timesheet-service/internal/auth"
	"timesheet-service/internal/domain"
	"timesheet-service/internal/metrics"
	"timesheet-service/internal/models"
	"timesheet-service/internal/policy"
	"timesheet-service/internal/repository"
)

// LogTimeInput is the payload for logging a single entry.
type LogTimeInput struct {
	ProjectID   uuid.UUID
	Date        time.Time
	Hours       float64
	Description string
}

// RecurringInput is the payload for logging the same entry on several dates.
type RecurringInput struct {
	ProjectID   uuid.UUID
	Hours       float64
	Description string
	Dates       []time.Time
}

// UpdateEntryInput carries the mutable fields of an entry. Nil means
// "leave unchanged". ProjectID, Date and UserID are immutable.
type UpdateEntryInput struct {
	Hours       *float64
	Description *string
}

// TimesheetService is the single orchestration point for timesheet entries.
// It enforces ownership, the period lock and the daily capacity ceiling
// around every mutation.
type TimesheetService struct {
	entries     repository.EntryRepository
	invalidator Invalidator
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewTimesheetService creates a TimesheetService. metrics may be nil.
func NewTimesheetService(entries repository.EntryRepository, invalidator Invalidator, m *metrics.Metrics) *TimesheetService {
	return &TimesheetService{
		entries:     entries,
		invalidator: invalidator,
		metrics:     m,
		now:         time.Now,
	}
}

// LogTime creates a new entry owned by the actor for the given calendar day.
// The same-day read and the insert run in one transaction with the day's
// rows locked, so two concurrent calls cannot both squeeze past the ceiling.
func (s *TimesheetService) LogTime(actor *auth.Actor, in LogTimeInput) (uuid.UUID, error) {
	defer s.metrics.ObserveDuration(opLogTime, time.Now())
	if actor == nil {
		return uuid.Nil, s.observe(opLogTime, domain.ErrUnauthorized)
	}
	day := policy.Day(in.Date)
	if policy.IsLocked(day, s.now()) {
		return uuid.Nil, s.observe(opLogTime, &domain.PeriodLockedError{
			EntryDate: day,
			LockDate:  policy.LockDate(day),
		})
	}

	entry := &models.TimesheetEntry{
		UserID:      actor.ID,
		ProjectID:   in.ProjectID,
		Date:        day,
		Hours:       in.Hours,
		Description: in.Description,
	}
	err := s.entries.Transaction(func(tx repository.EntryRepository) error {
		dayStart, dayEnd := policy.DayWindow(day)
		existing, err := tx.FindByUserAndDayForUpdate(actor.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		res := policy.CheckCapacity(entryHours(existing), models.HoursToTicks(in.Hours), uuid.Nil)
		if !res.OK {
			return limitError(res)
		}
		return tx.Create(entry)
	})
	if err := s.observe(opLogTime, err); err != nil {
		return uuid.Nil, err
	}
	s.invalidator.InvalidateCalendar(actor.ID, day)
	return entry.ID, nil
}

// LogRecurringTime creates one entry per date, all-or-nothing. Every date is
// validated against the lock and the capacity ceiling before anything is
// persisted; dates repeated within the batch stack against the same day.
func (s *TimesheetService) LogRecurringTime(actor *auth.Actor, in RecurringInput) (int, error) {
	defer s.metrics.ObserveDuration(opLogRecurring, time.Now())
	if actor == nil {
		return 0, s.observe(opLogRecurring, domain.ErrUnauthorized)
	}
	if len(in.Dates) == 0 {
		return 0, nil
	}

	now := s.now()
	days := make([]time.Time, len(in.Dates))
	for i, d := range in.Dates {
		day := policy.Day(d)
		if policy.IsLocked(day, now) {
			return 0, s.observe(opLogRecurring, &domain.PeriodLockedError{
				EntryDate: day,
				LockDate:  policy.LockDate(day),
			})
		}
		days[i] = day
	}

	candidate := models.HoursToTicks(in.Hours)
	err := s.entries.Transaction(func(tx repository.EntryRepository) error {
		// Validate in chronological order so concurrent batches acquire
		// day locks in the same order.
		for _, day := range sortedUniqueDays(days) {
			dayStart, dayEnd := policy.DayWindow(day)
			existing, err := tx.FindByUserAndDayForUpdate(actor.ID, dayStart, dayEnd)
			if err != nil {
				return err
			}
			hrs := entryHours(existing)
			for _, d := range days {
				if !d.Equal(day) {
					continue
				}
				res := policy.CheckCapacity(hrs, candidate, uuid.Nil)
				if !res.OK {
					return limitError(res)
				}
				hrs = append(hrs, policy.EntryHours{Ticks: candidate})
			}
		}
		for _, day := range days {
			entry := &models.TimesheetEntry{
				UserID:      actor.ID,
				ProjectID:   in.ProjectID,
				Date:        day,
				Hours:       in.Hours,
				Description: in.Description,
			}
			if err := tx.Create(entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err := s.observe(opLogRecurring, err); err != nil {
		return 0, err
	}
	for _, day := range sortedUniqueDays(days) {
		s.invalidator.InvalidateCalendar(actor.ID, day)
	}
	return len(days), nil
}

// UpdateEntry changes an entry's hours and/or description. Ownership is
// absolute: no role may edit another user's entry. The lock is evaluated
// against the entry's stored date. A capacity re-check happens only when
// the hours actually change, excluding the entry's own stored hours.
func (s *TimesheetService) UpdateEntry(actor *auth.Actor, entryID uuid.UUID, in UpdateEntryInput) error {
	defer s.metrics.ObserveDuration(opUpdateEntry, time.Now())
	if actor == nil {
		return s.observe(opUpdateEntry, domain.ErrUnauthorized)
	}
	entry, err := s.entries.GetByID(entryID)
	if err != nil {
		return s.observe(opUpdateEntry, err)
	}
	if entry.UserID != actor.ID {
		return s.observe(opUpdateEntry, domain.ErrUnauthorized)
	}
	if policy.IsLocked(entry.Date, s.now()) {
		return s.observe(opUpdateEntry, &domain.PeriodLockedError{
			EntryDate: policy.Day(entry.Date),
			LockDate:  policy.LockDate(entry.Date),
		})
	}

	if in.Description != nil {
		entry.Description = *in.Description
	}
	hoursChanged := in.Hours != nil && models.HoursToTicks(*in.Hours) != entry.Ticks()
	if !hoursChanged {
		if err := s.observe(opUpdateEntry, s.entries.Update(entry)); err != nil {
			return err
		}
		s.invalidator.InvalidateCalendar(actor.ID, entry.Date)
		return nil
	}

	err = s.entries.Transaction(func(tx repository.EntryRepository) error {
		dayStart, dayEnd := policy.DayWindow(entry.Date)
		existing, err := tx.FindByUserAndDayForUpdate(entry.UserID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		res := policy.CheckCapacity(entryHours(existing), models.HoursToTicks(*in.Hours), entry.ID)
		if !res.OK {
			return limitError(res)
		}
		entry.Hours = *in.Hours
		return tx.Update(entry)
	})
	if err := s.observe(opUpdateEntry, err); err != nil {
		return err
	}
	s.invalidator.InvalidateCalendar(actor.ID, entry.Date)
	return nil
}

// DeleteEntry removes an entry. The lock is checked before ownership; a
// request that is both locked and foreign reports the lock.
func (s *TimesheetService) DeleteEntry(actor *auth.Actor, entryID uuid.UUID) error {
	defer s.metrics.ObserveDuration(opDeleteEntry, time.Now())
	if actor == nil {
		return s.observe(opDeleteEntry, domain.ErrUnauthorized)
	}
	entry, err := s.entries.GetByID(entryID)
	if err != nil {
		return s.observe(opDeleteEntry, err)
	}
	if policy.IsLocked(entry.Date, s.now()) {
		return s.observe(opDeleteEntry, &domain.PeriodLockedError{
			EntryDate: policy.Day(entry.Date),
			LockDate:  policy.LockDate(entry.Date),
		})
	}
	if entry.UserID != actor.ID {
		return s.observe(opDeleteEntry, domain.ErrUnauthorized)
	}
	if err := s.observe(opDeleteEntry, s.entries.Delete(entryID)); err != nil {
		return err
	}
	s.invalidator.InvalidateCalendar(actor.ID, entry.Date)
	return nil
}

// ListEntries returns the actor's own entries for the anchor month, joined
// with project display fields. An unauthenticated caller gets an empty list,
// not an error; read-only views stay non-fatal.
func (s *TimesheetService) ListEntries(actor *auth.Actor, monthAnchor time.Time) ([]models.TimesheetEntry, error) {
	defer s.metrics.ObserveDuration(opListEntries, time.Now())
	if actor == nil {
		return []models.TimesheetEntry{}, nil
	}
	from, to := policy.MonthWindow(monthAnchor)
	entries, err := s.entries.FindByUserBetween(actor.ID, from, to)
	if err := s.observe(opListEntries, err); err != nil {
		return nil, err
	}
	return entries, nil
}

const (
	opLogTime      = "log_time"
	opLogRecurring = "log_recurring"
	opUpdateEntry  = "update_entry"
	opDeleteEntry  = "delete_entry"
	opListEntries  = "list_entries"
)

// observe records the operation outcome and passes err through unchanged.
func (s *TimesheetService) observe(operation string, err error) error {
	switch {
	case err == nil:
		s.metrics.RecordOperation(operation, "success")
	case errors.Is(err, domain.ErrUnauthorized):
		s.metrics.RecordRejection(operation, "unauthorized")
		s.metrics.RecordOperation(operation, "rejected")
	case errors.Is(err, domain.ErrNotFound):
		s.metrics.RecordRejection(operation, "not_found")
		s.metrics.RecordOperation(operation, "rejected")
	case domain.IsPeriodLocked(err):
		s.metrics.RecordRejection(operation, "period_locked")
		s.metrics.RecordOperation(operation, "rejected")
	case domain.IsDailyLimitExceeded(err):
		s.metrics.RecordRejection(operation, "daily_limit")
		s.metrics.RecordOperation(operation, "rejected")
	default:
		s.metrics.RecordOperation(operation, "error")
	}
	return err
}

func limitError(res policy.CapacityResult) error {
	return &domain.DailyLimitExceededError{
		ExistingHours:  models.TicksToHours(res.ExistingTicks),
		AttemptedHours: models.TicksToHours(res.AttemptedTicks),
	}
}

func entryHours(entries []models.TimesheetEntry) []policy.EntryHours {
	hrs := make([]policy.EntryHours, len(entries))
	for i, e := range entries {
		hrs[i] = policy.EntryHours{ID: e.ID, Ticks: e.Ticks()}
	}
	return hrs
}

func sortedUniqueDays(days []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(days))
	unique := make([]time.Time, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		unique = append(unique, d)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].Before(unique[j]) })
	return unique
}
