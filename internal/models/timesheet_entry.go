package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// TimesheetEntry is one block of logged work for a user on a calendar day.
// UserID, ProjectID and Date are immutable after creation; only Hours and
// Description may change, and only while the entry's period is unlocked.
type TimesheetEntry struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_entry_user_date"`
	ProjectID   uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index"`
	Date        time.Time `json:"date" gorm:"type:date;not null;index:idx_entry_user_date"`
	Hours       float64   `json:"hours" gorm:"not null"`
	Description string    `json:"description" gorm:"size:500"`
	Project     *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Ticks returns the entry's hours as integer half-hour ticks.
func (e *TimesheetEntry) Ticks() int {
	return HoursToTicks(e.Hours)
}

// HoursToTicks converts decimal hours to half-hour ticks. All capacity
// comparisons run on ticks so that 7.0 compares exactly at the boundary.
func HoursToTicks(hours float64) int {
	return int(math.Round(hours * 2))
}

// TicksToHours converts half-hour ticks back to decimal hours for display.
func TicksToHours(ticks int) float64 {
	return float64(ticks) / 2
}
