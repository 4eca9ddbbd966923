package domain

import "time"

type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	Priority    Priority
	StartDate   time.Time
	EndDate     time.Time
	Progress    float64
	OwnerID     string
	TeamMembers []string
	Tasks       []Task
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeProgress returns the percentage of tasks whose status is completed,
// or 0 when there are no tasks.
func ComputeProgress(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	var done int
	for _, t := range tasks {
		if t.Status == TaskCompleted {
			done++
		}
	}
	return 100 * float64(done) / float64(len(tasks))
}

// RecomputeProgress refreshes p.Progress from its current tasks.
func (p *Project) RecomputeProgress() {
	p.Progress = ComputeProgress(p.Tasks)
}

// TaskIndex returns the position of the task with the given id, or -1.
func (p *Project) TaskIndex(id string) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// HasMember reports whether userID is the owner or on the team.
func (p *Project) HasMember(userID string) bool {
	if p.OwnerID == userID {
		return true
	}
	for _, m := range p.TeamMembers {
		if m == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the project, including its tasks.
func (p Project) Clone() Project {
	out := p
	out.TeamMembers = CloneStrings(p.TeamMembers)
	if p.Tasks != nil {
		out.Tasks = make([]Task, len(p.Tasks))
		for i, t := range p.Tasks {
			out.Tasks[i] = t.Clone()
		}
	}
	return out
}

// DisplayID truncates ID to 8 characters for display.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
