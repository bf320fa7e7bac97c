package policy

import (
	"github.com/google/uuid"

	"timesheet-service/internal/models"
)

// EntryFilter carries the optional filters a report caller may supply.
// Filters only ever narrow the role scope, never escape it.
type EntryFilter struct {
	ProjectID *uuid.UUID
	UserID    *uuid.UUID
}

// EntryScope describes the set of timesheet entries an actor may read.
// A nil UserID and nil ProjectIDs means unrestricted on that axis. Empty
// means the scope resolves to no rows at all; callers must return an empty
// result set, not an error.
type EntryScope struct {
	Empty      bool
	UserID     *uuid.UUID
	ProjectIDs []uuid.UUID
}

// ResolveEntryScope maps a role to its read scope and intersects it with
// the caller-supplied filter:
//
//	DEV      own entries only
//	PM       entries of assigned projects
//	GM/ADMIN unrestricted
//
// A PM filtering on a project outside their assignment set gets an empty
// scope. Visibility is read-only; write access is governed solely by entry
// ownership in the timesheet service.
func ResolveEntryScope(role models.Role, actorID uuid.UUID, assignedProjects []uuid.UUID, filter EntryFilter) EntryScope {
	var scope EntryScope
	switch role {
	case models.RoleGM, models.RoleAdmin:
		// unrestricted
	case models.RolePM:
		if len(assignedProjects) == 0 {
			return EntryScope{Empty: true}
		}
		scope.ProjectIDs = assignedProjects
	default:
		id := actorID
		scope.UserID = &id
	}
	return intersect(scope, filter)
}

func intersect(scope EntryScope, filter EntryFilter) EntryScope {
	if filter.ProjectID != nil {
		if scope.ProjectIDs == nil || containsID(scope.ProjectIDs, *filter.ProjectID) {
			scope.ProjectIDs = []uuid.UUID{*filter.ProjectID}
		} else {
			return EntryScope{Empty: true}
		}
	}
	if filter.UserID != nil {
		if scope.UserID == nil || *scope.UserID == *filter.UserID {
			scope.UserID = filter.UserID
		} else {
			return EntryScope{Empty: true}
		}
	}
	return scope
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// CanListAllProjects reports whether the role sees the full project catalog.
// Everyone else sees only projects with an active assignment.
func CanListAllProjects(role models.Role) bool {
	return role == models.RoleGM || role == models.RoleAdmin
}
