// Package importer loads a project plan (a project plus its tasks) from a
// YAML or JSON file, validates it as a whole, and creates it in a project
// store.
package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a plan file.
type ImportSchema struct {
	Project  ProjectImport   `yaml:"project" json:"project"`
	Defaults *DefaultsImport `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Tasks    []TaskImport    `yaml:"tasks" json:"tasks"`
}

// ProjectImport holds the project fields of a plan file.
type ProjectImport struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Status      string   `yaml:"status,omitempty" json:"status,omitempty"`
	Priority    string   `yaml:"priority,omitempty" json:"priority,omitempty"`
	StartDate   string   `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     string   `yaml:"end_date" json:"end_date"`
	Owner       string   `yaml:"owner,omitempty" json:"owner,omitempty"`
	Team        []string `yaml:"team,omitempty" json:"team,omitempty"`
}

// DefaultsImport cascades to every task that leaves the field empty.
type DefaultsImport struct {
	Priority string   `yaml:"priority,omitempty" json:"priority,omitempty"`
	Assignee string   `yaml:"assignee,omitempty" json:"assignee,omitempty"`
	Tags     []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// TaskImport holds one task of a plan file.
type TaskImport struct {
	Title          string   `yaml:"title" json:"title"`
	Description    string   `yaml:"description,omitempty" json:"description,omitempty"`
	Status         string   `yaml:"status,omitempty" json:"status,omitempty"`
	Priority       string   `yaml:"priority,omitempty" json:"priority,omitempty"`
	Assignee       string   `yaml:"assignee,omitempty" json:"assignee,omitempty"`
	DueDate        *string  `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	EstimatedHours *float64 `yaml:"estimated_hours,omitempty" json:"estimated_hours,omitempty"`
	ActualHours    *float64 `yaml:"actual_hours,omitempty" json:"actual_hours,omitempty"`
	Tags           []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// ParseImportSchema decodes a plan. JSON input is accepted as YAML.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// LoadImportSchema reads and parses a plan file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}
