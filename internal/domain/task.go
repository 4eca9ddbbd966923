package domain

import "time"

type Task struct {
	ID             string
	Title          string
	Description    string
	Status         TaskStatus
	Priority       Priority
	AssigneeID     string
	ProjectID      string
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	Tags           []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOverdue reports whether the task has a due date before now and is not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && now.After(*t.DueDate) && t.Status != TaskCompleted
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	out.EstimatedHours = CloneFloatPtr(t.EstimatedHours)
	out.ActualHours = CloneFloatPtr(t.ActualHours)
	out.Tags = CloneStrings(t.Tags)
	return out
}

// DisplayID truncates ID to 8 characters for display.
func (t *Task) DisplayID() string {
	if len(t.ID) >= 8 {
		return t.ID[:8]
	}
	return t.ID
}
