package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/google/uuid"
)

var testProductCounter atomic.Int64

// Day returns midnight UTC of the given date, the shape start, end and due
// dates have after a round trip through storage.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectPriority(pr domain.Priority) ProjectOption {
	return func(p *domain.Project) {
		p.Priority = pr
	}
}

func WithOwner(id string) ProjectOption {
	return func(p *domain.Project) {
		p.OwnerID = id
	}
}

func WithTeam(ids ...string) ProjectOption {
	return func(p *domain.Project) {
		p.TeamMembers = ids
	}
}

func WithDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

// WithTasks attaches tasks to the project, rewriting their ProjectID, and
// recomputes progress.
func WithTasks(tasks ...domain.Task) ProjectOption {
	return func(p *domain.Project) {
		for _, t := range tasks {
			t.ProjectID = p.ID
			p.Tasks = append(p.Tasks, t)
		}
		p.RecomputeProgress()
	}
}

func WithProjectUpdatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.UpdatedAt = t
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectActive,
		Priority:  domain.PriorityMedium,
		StartDate: Day(2024, time.January, 1),
		EndDate:   Day(2024, time.December, 31),
		OwnerID:   "1",
		Tasks:     []domain.Task{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithTaskPriority(pr domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = pr
	}
}

func WithAssignee(id string) TaskOption {
	return func(t *domain.Task) {
		t.AssigneeID = id
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithHours(estimated, actual float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = &estimated
		t.ActualHours = &actual
	}
}

func WithTaskDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) {
		t.Tags = tags
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) domain.Task {
	now := time.Now().UTC()
	t := domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityMedium,
		ProjectID: projectID,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Product options
type ProductOption func(*domain.Product)

func WithPrice(c domain.Cents) ProductOption {
	return func(p *domain.Product) {
		p.Price = c
	}
}

func WithOriginalPrice(c domain.Cents) ProductOption {
	return func(p *domain.Product) {
		p.OriginalPrice = &c
	}
}

func WithStock(n int) ProductOption {
	return func(p *domain.Product) {
		p.Stock = n
	}
}

func WithCategory(c string) ProductOption {
	return func(p *domain.Product) {
		p.Category = c
	}
}

func WithProductTags(tags ...string) ProductOption {
	return func(p *domain.Product) {
		p.Tags = tags
	}
}

func WithRating(r float64) ProductOption {
	return func(p *domain.Product) {
		p.Rating = r
	}
}

func Featured() ProductOption {
	return func(p *domain.Product) {
		p.Featured = true
	}
}

func WithProductID(id string) ProductOption {
	return func(p *domain.Product) {
		p.ID = id
	}
}

// NewTestProduct returns an in-stock product with a sequential numeric ID.
func NewTestProduct(name string, opts ...ProductOption) domain.Product {
	n := testProductCounter.Add(1)
	p := domain.Product{
		ID:          fmt.Sprintf("%d", 1000+n),
		Name:        name,
		Price:       1999,
		Description: name + " for testing",
		Images:      []string{"https://example.com/" + uuid.NewString() + ".jpg"},
		Category:    "Electronics",
		Stock:       10,
		Rating:      4.0,
		Reviews:     12,
		Tags:        []string{},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func NewTestUser(email string, role domain.Role) *domain.User {
	return &domain.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}
