package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/store"
)

// Plan is a validated schema translated into store inputs. Task inputs
// carry no ProjectID until the project exists.
type Plan struct {
	Project store.ProjectInput
	Tasks   []store.TaskInput
}

// Convert translates a schema into store inputs, applying defaults. owner
// fills the project owner when the file names none.
func Convert(schema *ImportSchema, owner string) (Plan, error) {
	if errs := ValidateImportSchema(schema); len(errs) > 0 {
		return Plan{}, fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}

	p := schema.Project
	start, _ := parseDateField("project.start_date", p.StartDate)
	end, _ := parseDateField("project.end_date", p.EndDate)
	plan := Plan{Project: store.ProjectInput{
		Name:        p.Name,
		Description: p.Description,
		Status:      domain.ProjectStatus(p.Status),
		Priority:    domain.Priority(p.Priority),
		StartDate:   start,
		EndDate:     end,
		OwnerID:     domain.CoalesceStr(p.Owner, owner),
		TeamMembers: domain.CloneStrings(p.Team),
	}}

	defaults := DefaultsImport{}
	if schema.Defaults != nil {
		defaults = *schema.Defaults
	}
	for _, t := range schema.Tasks {
		in := store.TaskInput{
			Title:          t.Title,
			Description:    t.Description,
			Status:         domain.TaskStatus(t.Status),
			Priority:       domain.Priority(domain.CoalesceStr(t.Priority, defaults.Priority)),
			AssigneeID:     domain.CoalesceStr(t.Assignee, defaults.Assignee),
			EstimatedHours: domain.CloneFloatPtr(t.EstimatedHours),
			ActualHours:    domain.CloneFloatPtr(t.ActualHours),
			Tags:           domain.CloneStrings(t.Tags),
		}
		if len(in.Tags) == 0 {
			in.Tags = domain.CloneStrings(defaults.Tags)
		}
		if t.DueDate != nil && *t.DueDate != "" {
			due, _ := parseDateField("due_date", *t.DueDate)
			in.DueDate = &due
		}
		plan.Tasks = append(plan.Tasks, in)
	}
	return plan, nil
}

// Target is the part of the project store an import writes to.
type Target interface {
	Project(id string) (domain.Project, error)
	CreateProject(ctx context.Context, in store.ProjectInput) (domain.Project, error)
	CreateTask(ctx context.Context, in store.TaskInput) (domain.Task, error)
	DeleteProject(ctx context.Context, id string) error
}

// Import creates the project and then its tasks in file order. If any task
// fails the project is deleted again, so a plan lands whole or not at all.
func Import(ctx context.Context, target Target, plan Plan) (domain.Project, error) {
	created, err := target.CreateProject(ctx, plan.Project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("creating project: %w", err)
	}

	for i, in := range plan.Tasks {
		in.ProjectID = created.ID
		if _, err := target.CreateTask(ctx, in); err != nil {
			if rbErr := target.DeleteProject(ctx, created.ID); rbErr != nil {
				return domain.Project{}, errors.Join(
					fmt.Errorf("creating task %d %q: %w", i, in.Title, err),
					fmt.Errorf("rolling back project: %w", rbErr))
			}
			return domain.Project{}, fmt.Errorf("creating task %d %q: %w", i, in.Title, err)
		}
	}
	return target.Project(created.ID)
}
