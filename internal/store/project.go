package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/hubkit/internal/demo"
	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/repository"
	"github.com/google/uuid"
)

// ProjectInput describes a new project.
type ProjectInput struct {
	Name        string
	Description string
	Status      domain.ProjectStatus // defaults to planning
	Priority    domain.Priority      // defaults to medium
	StartDate   time.Time            // defaults to today
	EndDate     time.Time
	OwnerID     string
	TeamMembers []string // defaults to the owner
}

// ProjectPatch lists the fields UpdateProject may change; nil leaves a field
// untouched. Tasks and progress are not patchable.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
	Priority    *domain.Priority
	StartDate   *time.Time
	EndDate     *time.Time
	OwnerID     *string
	TeamMembers *[]string
}

// TaskInput describes a new task.
type TaskInput struct {
	ProjectID      string
	Title          string
	Description    string
	Status         domain.TaskStatus // defaults to todo
	Priority       domain.Priority   // defaults to medium
	AssigneeID     string
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	Tags           []string
}

// TaskPatch lists the fields UpdateTask may change; nil leaves a field
// untouched. A task never moves between projects.
type TaskPatch struct {
	Title          *string
	Description    *string
	Status         *domain.TaskStatus
	Priority       *domain.Priority
	AssigneeID     *string
	DueDate        *time.Time
	ClearDueDate   bool
	EstimatedHours *float64
	ActualHours    *float64
	Tags           *[]string
}

// ProjectStore owns every project and, by containment, every task.
type ProjectStore struct {
	mu       sync.Mutex
	repo     repository.ProjectRepo
	projects []domain.Project
	current  string
	opts     options
}

// OpenProjectStore loads the persisted projects. When nothing has been
// persisted yet the demo projects are loaded and saved. Stored progress is
// recomputed on load.
func OpenProjectStore(ctx context.Context, repo repository.ProjectRepo, opts ...Option) (*ProjectStore, error) {
	projects, found, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	if !found {
		projects = demo.Projects()
		if err := repo.Save(ctx, projects); err != nil {
			return nil, fmt.Errorf("seeding demo projects: %w", err)
		}
	}
	for i := range projects {
		projects[i].RecomputeProgress()
	}

	current, err := repo.LoadCurrent(ctx)
	if err != nil {
		return nil, err
	}

	s := &ProjectStore{repo: repo, projects: projects, opts: buildOptions(0, opts)}
	if s.indexOf(current) >= 0 {
		s.current = current
	}
	return s, nil
}

// Projects returns copies of every project in creation order.
func (s *ProjectStore) Projects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProjects(s.projects)
}

// Project returns a copy of the project with the given id.
func (s *ProjectStore) Project(id string) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Project{}, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return s.projects[i].Clone(), nil
}

// ProjectTasks returns the project's tasks in insertion order.
func (s *ProjectStore) ProjectTasks(projectID string) ([]domain.Task, error) {
	p, err := s.Project(projectID)
	if err != nil {
		return nil, err
	}
	return p.Tasks, nil
}

// Task looks a task up across all projects.
func (s *ProjectStore) Task(id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pi, ti := findTask(s.projects, id)
	if pi < 0 {
		return domain.Task{}, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return s.projects[pi].Tasks[ti].Clone(), nil
}

// Tasks returns every task of every project, grouped by project.
func (s *ProjectStore) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Task
	for _, p := range s.projects {
		for _, t := range p.Tasks {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Current returns the selected project, or nil.
func (s *ProjectStore) Current() *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(s.current)
	if i < 0 {
		return nil
	}
	p := s.projects[i].Clone()
	return &p
}

// SetCurrent selects a project; "" clears the selection.
func (s *ProjectStore) SetCurrent(ctx context.Context, id string) (err error) {
	done := observe(ctx, s.opts, "select-project", map[string]any{"project_id": id})
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.indexOf(id) < 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	if err = s.repo.SaveCurrent(ctx, id); err != nil {
		return err
	}
	s.current = id
	return nil
}

// CreateProject validates in, assigns an id and timestamps, and appends the
// project with no tasks and zero progress.
func (s *ProjectStore) CreateProject(ctx context.Context, in ProjectInput) (created domain.Project, err error) {
	fields := map[string]any{"name": in.Name}
	err = s.mutate(ctx, "create-project", fields, func(projects []domain.Project) ([]domain.Project, error) {
		now := s.opts.now()
		p := domain.Project{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Status:      domain.ProjectStatus(domain.CoalesceStr(string(in.Status), string(domain.ProjectPlanning))),
			Priority:    domain.Priority(domain.CoalesceStr(string(in.Priority), string(domain.PriorityMedium))),
			StartDate:   truncateDay(in.StartDate),
			EndDate:     truncateDay(in.EndDate),
			OwnerID:     in.OwnerID,
			TeamMembers: domain.CloneStrings(in.TeamMembers),
			Tasks:       []domain.Task{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if in.StartDate.IsZero() {
			p.StartDate = truncateDay(now)
		}
		if len(p.TeamMembers) == 0 && p.OwnerID != "" {
			p.TeamMembers = []string{p.OwnerID}
		}
		if err := validateProject(p); err != nil {
			return nil, err
		}
		fields["project_id"] = p.ID
		created = p.Clone()
		return append(projects, p), nil
	})
	return created, err
}

// UpdateProject merges patch into the project and refreshes UpdatedAt.
func (s *ProjectStore) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (updated domain.Project, err error) {
	fields := map[string]any{"project_id": id}
	err = s.mutate(ctx, "update-project", fields, func(projects []domain.Project) ([]domain.Project, error) {
		i := indexOfProject(projects, id)
		if i < 0 {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		p := &projects[i]
		p.Name = strings.TrimSpace(domain.StrFromPtr(p.Name, patch.Name))
		p.Description = domain.StrFromPtr(p.Description, patch.Description)
		p.OwnerID = domain.StrFromPtr(p.OwnerID, patch.OwnerID)
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Priority != nil {
			p.Priority = *patch.Priority
		}
		if patch.StartDate != nil {
			p.StartDate = truncateDay(*patch.StartDate)
		}
		if patch.EndDate != nil {
			p.EndDate = truncateDay(*patch.EndDate)
		}
		if patch.TeamMembers != nil {
			p.TeamMembers = domain.CloneStrings(*patch.TeamMembers)
		}
		if err := validateProject(*p); err != nil {
			return nil, err
		}
		p.UpdatedAt = s.opts.now()
		updated = p.Clone()
		return projects, nil
	})
	return updated, err
}

// DeleteProject removes the project and its tasks, clearing the selection
// if it pointed at the project.
func (s *ProjectStore) DeleteProject(ctx context.Context, id string) (err error) {
	done := observe(ctx, s.opts, "delete-project", map[string]any{"project_id": id})
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	next := cloneProjects(s.projects)
	next = append(next[:i], next[i+1:]...)

	current := s.current
	if current == id {
		current = ""
		err = s.repo.SaveWithCurrent(ctx, next, current)
	} else {
		err = s.repo.Save(ctx, next)
	}
	if err != nil {
		return err
	}
	s.projects = next
	s.current = current
	return nil
}

// CreateTask appends a task to its project and recomputes the project's
// progress.
func (s *ProjectStore) CreateTask(ctx context.Context, in TaskInput) (created domain.Task, err error) {
	fields := map[string]any{"project_id": in.ProjectID, "title": in.Title}
	err = s.mutate(ctx, "create-task", fields, func(projects []domain.Project) ([]domain.Project, error) {
		i := indexOfProject(projects, in.ProjectID)
		if i < 0 {
			return nil, fmt.Errorf("project %s: %w", in.ProjectID, domain.ErrNotFound)
		}
		now := s.opts.now()
		t := domain.Task{
			ID:             uuid.New().String(),
			Title:          strings.TrimSpace(in.Title),
			Description:    in.Description,
			Status:         domain.TaskStatus(domain.CoalesceStr(string(in.Status), string(domain.TaskTodo))),
			Priority:       domain.Priority(domain.CoalesceStr(string(in.Priority), string(domain.PriorityMedium))),
			AssigneeID:     in.AssigneeID,
			ProjectID:      in.ProjectID,
			EstimatedHours: domain.CloneFloatPtr(in.EstimatedHours),
			ActualHours:    domain.CloneFloatPtr(in.ActualHours),
			Tags:           domain.CloneStrings(in.Tags),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if t.Tags == nil {
			t.Tags = []string{}
		}
		if in.DueDate != nil {
			d := truncateDay(*in.DueDate)
			t.DueDate = &d
		}
		if err := validateTask(t); err != nil {
			return nil, err
		}

		p := &projects[i]
		p.Tasks = append(p.Tasks, t)
		p.RecomputeProgress()
		p.UpdatedAt = now
		fields["task_id"] = t.ID
		created = t.Clone()
		return projects, nil
	})
	return created, err
}

// UpdateTask merges patch into the task wherever it lives and recomputes
// the owning project's progress once.
func (s *ProjectStore) UpdateTask(ctx context.Context, id string, patch TaskPatch) (updated domain.Task, err error) {
	fields := map[string]any{"task_id": id}
	err = s.mutate(ctx, "update-task", fields, func(projects []domain.Project) ([]domain.Project, error) {
		pi, ti := findTask(projects, id)
		if pi < 0 {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		p := &projects[pi]
		t := &p.Tasks[ti]
		t.Title = strings.TrimSpace(domain.StrFromPtr(t.Title, patch.Title))
		t.Description = domain.StrFromPtr(t.Description, patch.Description)
		t.AssigneeID = domain.StrFromPtr(t.AssigneeID, patch.AssigneeID)
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		switch {
		case patch.ClearDueDate:
			t.DueDate = nil
		case patch.DueDate != nil:
			d := truncateDay(*patch.DueDate)
			t.DueDate = &d
		}
		if patch.EstimatedHours != nil {
			t.EstimatedHours = domain.CloneFloatPtr(patch.EstimatedHours)
		}
		if patch.ActualHours != nil {
			t.ActualHours = domain.CloneFloatPtr(patch.ActualHours)
		}
		if patch.Tags != nil {
			t.Tags = domain.CloneStrings(*patch.Tags)
		}
		if err := validateTask(*t); err != nil {
			return nil, err
		}

		now := s.opts.now()
		t.UpdatedAt = now
		p.UpdatedAt = now
		p.RecomputeProgress()
		fields["project_id"] = p.ID
		fields["status"] = string(t.Status)
		updated = t.Clone()
		return projects, nil
	})
	return updated, err
}

// MoveTask sets a task's status.
func (s *ProjectStore) MoveTask(ctx context.Context, id string, status domain.TaskStatus) (domain.Task, error) {
	return s.UpdateTask(ctx, id, TaskPatch{Status: &status})
}

// DeleteTask removes a task and recomputes its project's progress.
func (s *ProjectStore) DeleteTask(ctx context.Context, id string) error {
	fields := map[string]any{"task_id": id}
	return s.mutate(ctx, "delete-task", fields, func(projects []domain.Project) ([]domain.Project, error) {
		pi, ti := findTask(projects, id)
		if pi < 0 {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		p := &projects[pi]
		p.Tasks = append(p.Tasks[:ti], p.Tasks[ti+1:]...)
		p.RecomputeProgress()
		p.UpdatedAt = s.opts.now()
		fields["project_id"] = p.ID
		return projects, nil
	})
}

// mutate applies fn to a deep copy of the projects, persists the result,
// and commits it only when the save succeeds.
func (s *ProjectStore) mutate(ctx context.Context, name string, fields map[string]any, fn func([]domain.Project) ([]domain.Project, error)) (err error) {
	done := observe(ctx, s.opts, name, fields)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(cloneProjects(s.projects))
	if err != nil {
		return err
	}
	if err = s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.projects = next
	return nil
}

func (s *ProjectStore) indexOf(id string) int {
	return indexOfProject(s.projects, id)
}

func indexOfProject(projects []domain.Project, id string) int {
	if id == "" {
		return -1
	}
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

func findTask(projects []domain.Project, id string) (int, int) {
	for pi := range projects {
		if ti := projects[pi].TaskIndex(id); ti >= 0 {
			return pi, ti
		}
	}
	return -1, -1
}

func cloneProjects(projects []domain.Project) []domain.Project {
	out := make([]domain.Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}

// truncateDay drops the time of day; start, end and due dates are calendar
// dates.
func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateProject(p domain.Project) error {
	if p.Name == "" {
		return fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}
	if !domain.ValidProjectStatuses[p.Status] {
		return fmt.Errorf("%w: unknown project status %q", domain.ErrValidation, p.Status)
	}
	if !domain.ValidPriorities[p.Priority] {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, p.Priority)
	}
	if p.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required", domain.ErrValidation)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s", domain.ErrValidation,
			p.EndDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	return nil
}

func validateTask(t domain.Task) error {
	if t.Title == "" {
		return fmt.Errorf("%w: task title is required", domain.ErrValidation)
	}
	if !domain.ValidTaskStatus(t.Status) {
		return fmt.Errorf("%w: unknown task status %q", domain.ErrValidation, t.Status)
	}
	if !domain.ValidPriorities[t.Priority] {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, t.Priority)
	}
	if t.EstimatedHours != nil && *t.EstimatedHours <= 0 {
		return fmt.Errorf("%w: estimated hours must be positive", domain.ErrValidation)
	}
	if t.ActualHours != nil && *t.ActualHours <= 0 {
		return fmt.Errorf("%w: actual hours must be positive", domain.ErrValidation)
	}
	return nil
}
