package services

import (
	"time"

	"github.com/google/uuid"

	"timesheet-service/internal/auth"
	"timesheet-service/internal/domain"
	"timesheet-service/internal/models"
	"timesheet-service/internal/policy"
	"timesheet-service/internal/repository"
)

// ReportService serves the read-only, role-scoped views used by managers.
// It never grants write access; mutations go through TimesheetService only.
type ReportService struct {
	entries     repository.EntryRepository
	projects    repository.ProjectRepository
	assignments repository.AssignmentRepository
	holidays    repository.HolidayRepository
}

func NewReportService(
	entries repository.EntryRepository,
	projects repository.ProjectRepository,
	assignments repository.AssignmentRepository,
	holidays repository.HolidayRepository,
) *ReportService {
	return &ReportService{
		entries:     entries,
		projects:    projects,
		assignments: assignments,
		holidays:    holidays,
	}
}

// ReportFilter narrows a team report. Month anchors the reporting window;
// the optional filters intersect the actor's role scope.
type ReportFilter struct {
	Month     time.Time
	ProjectID *uuid.UUID
	UserID    *uuid.UUID
}

// TeamEntries returns the entries visible to the actor for the filter month.
// A PM filtering on a project outside their assignments gets an empty list,
// not an error.
func (s *ReportService) TeamEntries(actor *auth.Actor, filter ReportFilter) ([]models.TimesheetEntry, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	var assigned []uuid.UUID
	if actor.Role == models.RolePM {
		var err error
		assigned, err = s.assignments.ProjectIDsForUser(actor.ID)
		if err != nil {
			return nil, err
		}
	}
	scope := policy.ResolveEntryScope(actor.Role, actor.ID, assigned, policy.EntryFilter{
		ProjectID: filter.ProjectID,
		UserID:    filter.UserID,
	})
	from, to := policy.MonthWindow(filter.Month)
	return s.entries.FindScoped(scope, from, to)
}

// ListProjects returns the projects the actor may log against or report on:
// the full catalog for GM/ADMIN, assigned projects for everyone else.
func (s *ReportService) ListProjects(actor *auth.Actor) ([]models.Project, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if policy.CanListAllProjects(actor.Role) {
		return s.projects.List()
	}
	return s.projects.ListAssigned(actor.ID)
}

// WorkableDays counts the weekdays of a month minus its weekday holidays.
func (s *ReportService) WorkableDays(year int, month time.Month) (int, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	holidays, err := s.holidays.FindBetween(from, to)
	if err != nil {
		return 0, err
	}
	offDays := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		offDays[h.Date.Format("2006-01-02")] = struct{}{}
	}
	count := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, off := offDays[d.Format("2006-01-02")]; off {
			continue
		}
		count++
	}
	return count, nil
}
