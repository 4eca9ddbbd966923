// Package demo seeds projecthub with a team and three sample projects the
// first time it runs against empty storage.
package demo

import (
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func hours(h float64) *float64 {
	return &h
}

const avatarBase = "https://images.pexels.com/photos/"

// Users returns the demo team. Task assignees and project members refer to
// these ids.
func Users() []domain.User {
	return []domain.User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", Role: domain.RoleAdmin,
			Avatar: avatarBase + "1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=400", CreatedAt: day("2024-01-01")},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Role: domain.RoleManager,
			Avatar: avatarBase + "1181686/pexels-photo-1181686.jpeg?auto=compress&cs=tinysrgb&w=400", CreatedAt: day("2024-01-02")},
		{ID: "3", Name: "Mike Johnson", Email: "mike@example.com", Role: domain.RoleMember,
			Avatar: avatarBase + "1222271/pexels-photo-1222271.jpeg?auto=compress&cs=tinysrgb&w=400", CreatedAt: day("2024-01-03")},
		{ID: "4", Name: "Sarah Wilson", Email: "sarah@example.com", Role: domain.RoleMember,
			Avatar: avatarBase + "1181424/pexels-photo-1181424.jpeg?auto=compress&cs=tinysrgb&w=400", CreatedAt: day("2024-01-04")},
	}
}

// UserName returns the display name of a demo user, or id itself.
func UserName(id string) string {
	for _, u := range Users() {
		if u.ID == id {
			return u.Name
		}
	}
	return id
}

type taskSeed struct {
	id, title, desc string
	status          domain.TaskStatus
	priority        domain.Priority
	assignee        string
	due             string
	est, actual     float64
	tags            []string
	created, upd    string
}

func (s taskSeed) task(projectID string) domain.Task {
	t := domain.Task{
		ID:          s.id,
		Title:       s.title,
		Description: s.desc,
		Status:      s.status,
		Priority:    s.priority,
		AssigneeID:  s.assignee,
		ProjectID:   projectID,
		DueDate:     dayPtr(s.due),
		Tags:        s.tags,
		CreatedAt:   day(s.created),
		UpdatedAt:   day(s.upd),
	}
	if s.est > 0 {
		t.EstimatedHours = hours(s.est)
	}
	if s.actual > 0 {
		t.ActualHours = hours(s.actual)
	}
	return t
}

// Projects returns fresh copies of the demo projects with progress already
// derived from their tasks.
func Projects() []domain.Project {
	projects := []domain.Project{
		{
			ID: "1", Name: "E-Commerce Platform",
			Description: "Building a modern e-commerce platform with React and Node.js",
			Status:      domain.ProjectActive, Priority: domain.PriorityHigh,
			StartDate: day("2024-01-15"), EndDate: day("2024-04-15"),
			OwnerID: "1", TeamMembers: []string{"1", "2", "3"},
			CreatedAt: day("2024-01-15"), UpdatedAt: day("2024-02-20"),
		},
		{
			ID: "2", Name: "Mobile App Development",
			Description: "Cross-platform mobile app using React Native",
			Status:      domain.ProjectPlanning, Priority: domain.PriorityMedium,
			StartDate: day("2024-03-01"), EndDate: day("2024-06-01"),
			OwnerID: "2", TeamMembers: []string{"2", "4"},
			CreatedAt: day("2024-02-01"), UpdatedAt: day("2024-02-15"),
		},
		{
			ID: "3", Name: "Company Website Redesign",
			Description: "Modernize company website with new branding and improved UX",
			Status:      domain.ProjectCompleted, Priority: domain.PriorityLow,
			StartDate: day("2023-11-01"), EndDate: day("2024-01-31"),
			OwnerID: "1", TeamMembers: []string{"1", "4"},
			CreatedAt: day("2023-11-01"), UpdatedAt: day("2024-01-31"),
		},
	}

	seeds := map[string][]taskSeed{
		"1": {
			{"1", "Setup project structure", "Initialize React app and Node.js backend",
				domain.TaskCompleted, domain.PriorityHigh, "2", "2024-01-20", 8, 6,
				[]string{"setup", "backend", "frontend"}, "2024-01-15", "2024-01-18"},
			{"2", "Design user authentication", "Implement JWT-based authentication system",
				domain.TaskCompleted, domain.PriorityHigh, "3", "2024-01-25", 12, 14,
				[]string{"auth", "security", "backend"}, "2024-01-16", "2024-01-24"},
			{"3", "Product catalog UI", "Create product listing and detail pages",
				domain.TaskInProgress, domain.PriorityMedium, "2", "2024-02-28", 20, 12,
				[]string{"ui", "frontend", "products"}, "2024-01-20", "2024-02-15"},
			{"4", "Shopping cart functionality", "Implement add to cart, remove items, and checkout flow",
				domain.TaskTodo, domain.PriorityHigh, "3", "2024-03-10", 16, 0,
				[]string{"cart", "checkout", "frontend"}, "2024-01-22", "2024-01-22"},
		},
		"2": {
			{"5", "Research React Native", "Study React Native best practices and setup requirements",
				domain.TaskCompleted, domain.PriorityMedium, "4", "2024-02-15", 16, 18,
				[]string{"research", "react-native", "mobile"}, "2024-02-01", "2024-02-14"},
			{"6", "Setup development environment", "Configure React Native development environment and emulators",
				domain.TaskInProgress, domain.PriorityHigh, "2", "2024-02-25", 8, 4,
				[]string{"setup", "environment", "mobile"}, "2024-02-10", "2024-02-20"},
		},
		"3": {
			{"7", "Design mockups", "Create wireframes and visual designs for new website",
				domain.TaskCompleted, domain.PriorityHigh, "4", "2023-11-15", 24, 26,
				[]string{"design", "ui", "mockups"}, "2023-11-01", "2023-11-14"},
			{"8", "Frontend development", "Implement responsive website using React and Tailwind CSS",
				domain.TaskCompleted, domain.PriorityHigh, "1", "2024-01-15", 40, 38,
				[]string{"frontend", "react", "tailwind"}, "2023-11-16", "2024-01-14"},
		},
	}

	for i := range projects {
		p := &projects[i]
		for _, s := range seeds[p.ID] {
			p.Tasks = append(p.Tasks, s.task(p.ID))
		}
		p.RecomputeProgress()
	}
	return projects
}
