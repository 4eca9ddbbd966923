package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
)

// ValidateImportSchema checks the whole plan and returns every problem
// found, so a file can be fixed in one pass.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error
	errs = append(errs, validateProject(&schema.Project)...)
	errs = append(errs, validateDefaults(schema.Defaults)...)
	for i, t := range schema.Tasks {
		errs = append(errs, validateTask(fmt.Sprintf("tasks[%d]", i), t)...)
	}
	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.Status != "" && !domain.ValidProjectStatuses[domain.ProjectStatus(p.Status)] {
		errs = append(errs, fmt.Errorf("project.status: invalid value %q", p.Status))
	}
	errs = append(errs, validatePriority("project.priority", p.Priority)...)

	start, startErrs := parseDateField("project.start_date", p.StartDate)
	errs = append(errs, startErrs...)
	if p.EndDate == "" {
		errs = append(errs, fmt.Errorf("project.end_date is required"))
		return errs
	}
	end, endErrs := parseDateField("project.end_date", p.EndDate)
	errs = append(errs, endErrs...)
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, fmt.Errorf("project.end_date %q must not be before start_date %q", p.EndDate, p.StartDate))
	}
	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	return validatePriority("defaults.priority", d.Priority)
}

func validateTask(prefix string, t TaskImport) []error {
	var errs []error

	if t.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}
	if t.Status != "" && !domain.ValidTaskStatus(domain.TaskStatus(t.Status)) {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
	}
	errs = append(errs, validatePriority(prefix+".priority", t.Priority)...)
	if t.DueDate != nil {
		_, dateErrs := parseDateField(prefix+".due_date", *t.DueDate)
		errs = append(errs, dateErrs...)
	}
	if t.EstimatedHours != nil && *t.EstimatedHours <= 0 {
		errs = append(errs, fmt.Errorf("%s.estimated_hours must be positive", prefix))
	}
	if t.ActualHours != nil && *t.ActualHours <= 0 {
		errs = append(errs, fmt.Errorf("%s.actual_hours must be positive", prefix))
	}
	return errs
}

func validatePriority(field, value string) []error {
	if value != "" && !domain.ValidPriorities[domain.Priority(value)] {
		return []error{fmt.Errorf("%s: invalid value %q", field, value)}
	}
	return nil
}

// parseDateField parses an optional YYYY-MM-DD value; empty yields the
// zero time.
func parseDateField(field, value string) (time.Time, []error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return t, nil
}
