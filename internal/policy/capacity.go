package policy

import "github.com/google/uuid"

// MaxDayTicks is the daily ceiling per user in half-hour ticks (7.0h).
// Capacity arithmetic runs entirely on ticks so the 7.0 boundary compares
// exactly.
const MaxDayTicks = 14

// EntryHours is one already-persisted entry as the capacity check sees it.
// The id is carried so an update can exclude its own stored hours, which
// would otherwise double-count against the new value.
type EntryHours struct {
	ID    uuid.UUID
	Ticks int
}

// CapacityResult reports the outcome of a capacity check together with the
// totals the caller needs for the rejection message.
type CapacityResult struct {
	OK             bool
	ExistingTicks  int
	AttemptedTicks int
}

// CheckCapacity validates that adding candidateTicks to the actor's day
// stays within MaxDayTicks. Exactly reaching the ceiling is valid. Pass
// uuid.Nil as excludeID when creating; pass the entry's own id when
// updating. The caller is responsible for fetching the correct day window
// and for passing only entries owned by the same user.
func CheckCapacity(existing []EntryHours, candidateTicks int, excludeID uuid.UUID) CapacityResult {
	existingTicks := 0
	for _, e := range existing {
		if excludeID != uuid.Nil && e.ID == excludeID {
			continue
		}
		existingTicks += e.Ticks
	}
	attempted := existingTicks + candidateTicks
	return CapacityResult{
		OK:             attempted <= MaxDayTicks,
		ExistingTicks:  existingTicks,
		AttemptedTicks: attempted,
	}
}
