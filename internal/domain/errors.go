// Package domain holds the business-rule error taxonomy shared by the
// service and handler layers. Infrastructure failures are not part of it;
// they are wrapped with pkg/errors at the repository boundary and surfaced
// as-is.
package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnauthorized covers both a missing actor and an actor touching an
	// entry they do not own. Ownership is absolute: no role bypasses it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound signals that a referenced timesheet entry does not exist.
	ErrNotFound = errors.New("entry not found")
)

// PeriodLockedError is returned when an entry's date falls outside the
// editable window (more than 5 days past its month's end).
type PeriodLockedError struct {
	EntryDate time.Time
	LockDate  time.Time
}

func (e *PeriodLockedError) Error() string {
	return fmt.Sprintf("period locked: entries for %s could be edited until %s",
		e.EntryDate.Format("2006-01-02"), e.LockDate.Format("2006-01-02"))
}

// DailyLimitExceededError carries the totals the caller needs to render
// "Daily limit exceeded. You have already logged Xh..." style messages.
type DailyLimitExceededError struct {
	ExistingHours  float64
	AttemptedHours float64
}

func (e *DailyLimitExceededError) Error() string {
	return fmt.Sprintf("daily limit exceeded: %.1fh already logged, %.1fh attempted, maximum is 7.0h",
		e.ExistingHours, e.AttemptedHours)
}

// IsPeriodLocked reports whether err is (or wraps) a PeriodLockedError.
func IsPeriodLocked(err error) bool {
	var target *PeriodLockedError
	return errors.As(err, &target)
}

// IsDailyLimitExceeded reports whether err is (or wraps) a
// DailyLimitExceededError.
func IsDailyLimitExceeded(err error) bool {
	var target *DailyLimitExceededError
	return errors.As(err, &target)
}
