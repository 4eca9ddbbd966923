package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/repository"
	"github.com/alexanderramin/hubkit/internal/storage"
	"github.com/alexanderramin/hubkit/internal/store"
	"github.com/alexanderramin/hubkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_AppliesDefaults(t *testing.T) {
	schema := &ImportSchema{
		Project:  ProjectImport{Name: "Launch", StartDate: "2024-03-01", EndDate: "2024-06-30"},
		Defaults: &DefaultsImport{Priority: "low", Assignee: "3", Tags: []string{"launch"}},
		Tasks: []TaskImport{
			{Title: "Plan", Priority: "high", Assignee: "2", DueDate: ptrStr("2024-03-15"), Tags: []string{"own"}},
			{Title: "Ship"},
		},
	}

	plan, err := Convert(schema, "9")
	require.NoError(t, err)

	assert.Equal(t, "9", plan.Project.OwnerID)
	assert.Equal(t, testutil.Day(2024, time.March, 1), plan.Project.StartDate)
	assert.Equal(t, testutil.Day(2024, time.June, 30), plan.Project.EndDate)

	require.Len(t, plan.Tasks, 2)
	assert.Equal(t, domain.PriorityHigh, plan.Tasks[0].Priority)
	assert.Equal(t, "2", plan.Tasks[0].AssigneeID)
	assert.Equal(t, []string{"own"}, plan.Tasks[0].Tags)
	require.NotNil(t, plan.Tasks[0].DueDate)
	assert.Equal(t, testutil.Day(2024, time.March, 15), *plan.Tasks[0].DueDate)

	assert.Equal(t, domain.PriorityLow, plan.Tasks[1].Priority)
	assert.Equal(t, "3", plan.Tasks[1].AssigneeID)
	assert.Equal(t, []string{"launch"}, plan.Tasks[1].Tags)
	assert.Nil(t, plan.Tasks[1].DueDate)
	assert.Empty(t, plan.Tasks[1].ProjectID)
}

func TestConvert_FileOwnerWins(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project.Owner = "1"

	plan, err := Convert(schema, "9")
	require.NoError(t, err)
	assert.Equal(t, "1", plan.Project.OwnerID)
}

func TestConvert_RejectsInvalidSchema(t *testing.T) {
	_, err := Convert(&ImportSchema{}, "1")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "project.name is required")
	assert.Contains(t, err.Error(), "project.end_date is required")
}

func openProjects(t *testing.T, kv storage.KV) *store.ProjectStore {
	t.Helper()
	s, err := store.OpenProjectStore(context.Background(), repository.NewKVProjectRepo(kv))
	require.NoError(t, err)
	return s
}

func TestImport_CreatesProjectWithTasks(t *testing.T) {
	projects := openProjects(t, storage.NewMemoryKV())
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  name: Launch
  end_date: "2099-06-30"
tasks:
  - title: Plan
    status: completed
  - title: Build
  - title: Ship
  - title: Celebrate
`), 0o644))

	schema, err := LoadImportSchema(path)
	require.NoError(t, err)
	plan, err := Convert(schema, "2")
	require.NoError(t, err)

	p, err := Import(context.Background(), projects, plan)
	require.NoError(t, err)
	assert.Equal(t, "Launch", p.Name)
	assert.Equal(t, "2", p.OwnerID)
	require.Len(t, p.Tasks, 4)
	for _, task := range p.Tasks {
		assert.Equal(t, p.ID, task.ProjectID)
	}
	assert.Equal(t, "Plan", p.Tasks[0].Title)
	assert.InDelta(t, 25.0, p.Progress, 0.001)
	assert.Len(t, projects.Projects(), 4, "three demo projects plus the import")
}

func TestImport_RollsBackOnTaskFailure(t *testing.T) {
	kv := &testutil.FailOnNthWriteKV{KV: storage.NewMemoryKV()}
	projects := openProjects(t, kv)

	// Seeding wrote once; the project is write 2, the first task write 3.
	kv.FailOn = int32(kv.Writes()) + 2
	kv.Err = errors.New("disk full")

	plan, err := Convert(&ImportSchema{
		Project: ProjectImport{Name: "Launch", EndDate: "2099-06-30"},
		Tasks:   []TaskImport{{Title: "Plan"}, {Title: "Ship"}},
	}, "2")
	require.NoError(t, err)

	_, err = Import(context.Background(), projects, plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `creating task 0 "Plan"`)
	assert.ErrorIs(t, err, kv.Err)

	assert.Len(t, projects.Projects(), 3, "the half-imported project is removed")
}

func TestLoadImportSchema_MissingFile(t *testing.T) {
	_, err := LoadImportSchema(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
