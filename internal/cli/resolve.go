package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/hubkit/internal/domain"
)

// resolveProject finds a project by exact id, then by case-insensitive
// name, then by unique id prefix.
func resolveProject(projects []domain.Project, input string) (domain.Project, error) {
	if input == "" {
		return domain.Project{}, fmt.Errorf("project ID is required")
	}
	for _, p := range projects {
		if p.ID == input {
			return p, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p, nil
		}
	}

	var matches []domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Project{}, fmt.Errorf("project %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return domain.Project{}, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTask finds a task by exact id, then by unique id prefix, then by
// unique case-insensitive title.
func resolveTask(tasks []domain.Task, input string) (domain.Task, error) {
	if input == "" {
		return domain.Task{}, fmt.Errorf("task ID is required")
	}
	var matches []domain.Task
	for _, t := range tasks {
		if t.ID == input {
			return t, nil
		}
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		for _, t := range tasks {
			if strings.EqualFold(t.Title, input) {
				matches = append(matches, t)
			}
		}
	}
	switch len(matches) {
	case 0:
		return domain.Task{}, fmt.Errorf("task %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return domain.Task{}, fmt.Errorf("task %q is ambiguous (%d matches)", input, len(matches))
	}
}
