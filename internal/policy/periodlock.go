// Package policy contains the pure business rules of the timesheet core:
// the period-lock window, the daily capacity ceiling and the role-based
// visibility scope. Nothing in here performs I/O.
package policy

import "time"

// lockGraceDays is the number of calendar days after a month's end during
// which that month's entries remain editable.
const lockGraceDays = 5

// Day truncates t to its calendar day, keeping the location. Time-of-day is
// irrelevant to every rule in this package.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).
		AddDate(0, 1, -1)
}

// LockDate returns the last day on which entries dated in entryDate's month
// may still be created, edited or deleted.
func LockDate(entryDate time.Time) time.Time {
	return MonthEnd(entryDate).AddDate(0, 0, lockGraceDays)
}

// IsLocked reports whether the edit window for entryDate has closed at now.
// The comparison is between calendar days: the whole lock-date day is still
// editable, locking starts the following midnight. Locking never re-opens.
func IsLocked(entryDate, now time.Time) bool {
	return Day(now).After(LockDate(entryDate))
}

// DayWindow returns the half-open interval [start, end) covering the
// calendar day of t, for same-day entry queries.
func DayWindow(t time.Time) (start, end time.Time) {
	start = Day(t)
	return start, start.AddDate(0, 0, 1)
}

// MonthWindow returns the half-open interval [start, end) covering the
// month of the anchor date.
func MonthWindow(anchor time.Time) (start, end time.Time) {
	start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	return start, start.AddDate(0, 1, 0)
}
