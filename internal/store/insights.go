package store

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
)

// Sentinel TaskFilter values.
const (
	FilterAll = "all"
	FilterMe  = "me"
)

// TaskFilter narrows the task list. Empty fields and FilterAll match
// everything; Assignee FilterMe matches CurrentUserID.
type TaskFilter struct {
	Search        string
	Status        string
	Assignee      string
	ProjectID     string
	CurrentUserID string
}

func (f TaskFilter) matches(t domain.Task) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if f.Status != "" && f.Status != FilterAll && string(t.Status) != f.Status {
		return false
	}
	switch f.Assignee {
	case "", FilterAll:
	case FilterMe:
		if f.CurrentUserID == "" || t.AssigneeID != f.CurrentUserID {
			return false
		}
	default:
		if t.AssigneeID != f.Assignee {
			return false
		}
	}
	if f.ProjectID != "" && f.ProjectID != FilterAll && t.ProjectID != f.ProjectID {
		return false
	}
	return true
}

// FilterTasks returns the tasks across all projects that pass f.
func (s *ProjectStore) FilterTasks(f TaskFilter) []domain.Task {
	var out []domain.Task
	for _, t := range s.Tasks() {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Board groups the tasks that pass f into kanban columns.
func (s *ProjectStore) Board(f TaskFilter) domain.Board {
	return domain.GroupByStatus(s.FilterTasks(f))
}

// Dashboard summarises every project for one user.
type Dashboard struct {
	TotalProjects     int
	ActiveProjects    int
	CompletedProjects int
	TotalTasks        int
	CompletedTasks    int
	MyTasks           int
	MyPendingTasks    int
	OverdueTasks      []domain.Task
	RecentProjects    []domain.Project
	UpcomingDeadlines []domain.Task
}

const dashboardListLimit = 5

// Stats computes the dashboard at now for userID.
func (s *ProjectStore) Stats(now time.Time, userID string) Dashboard {
	projects := s.Projects()
	d := Dashboard{TotalProjects: len(projects)}

	var open []domain.Task
	for _, p := range projects {
		switch p.Status {
		case domain.ProjectActive:
			d.ActiveProjects++
		case domain.ProjectCompleted:
			d.CompletedProjects++
		}
		for _, t := range p.Tasks {
			d.TotalTasks++
			done := t.Status == domain.TaskCompleted
			if done {
				d.CompletedTasks++
			}
			if userID != "" && t.AssigneeID == userID {
				d.MyTasks++
				if !done {
					d.MyPendingTasks++
				}
			}
			if t.IsOverdue(now) {
				d.OverdueTasks = append(d.OverdueTasks, t)
			}
			if !done && t.DueDate != nil {
				open = append(open, t)
			}
		}
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	d.RecentProjects = projects[:min(len(projects), dashboardListLimit)]

	sort.SliceStable(open, func(i, j int) bool {
		return open[i].DueDate.Before(*open[j].DueDate)
	})
	d.UpcomingDeadlines = open[:min(len(open), dashboardListLimit)]
	return d
}

// MemberLoad is one team member's share of a project's tasks.
type MemberLoad struct {
	UserID    string
	Tasks     int
	Completed int
}

// Workload counts each team member's assigned and completed tasks, in team
// order.
func (s *ProjectStore) Workload(projectID string) ([]MemberLoad, error) {
	p, err := s.Project(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]MemberLoad, 0, len(p.TeamMembers))
	for _, member := range p.TeamMembers {
		load := MemberLoad{UserID: member}
		for _, t := range p.Tasks {
			if t.AssigneeID != member {
				continue
			}
			load.Tasks++
			if t.Status == domain.TaskCompleted {
				load.Completed++
			}
		}
		out = append(out, load)
	}
	return out, nil
}
