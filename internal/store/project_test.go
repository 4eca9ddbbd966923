package store

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/repository"
	"github.com/alexanderramin/hubkit/internal/storage"
	"github.com/alexanderramin/hubkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectInput(name string) ProjectInput {
	return ProjectInput{
		Name:      name,
		StartDate: testutil.Day(2024, time.January, 1),
		EndDate:   testutil.Day(2024, time.June, 30),
		OwnerID:   "1",
	}
}

func TestOpenProjectStore_SeedsDemoData(t *testing.T) {
	kv := testutil.NewTestKV(t)
	s := newProjectStore(t, kv)

	projects := s.Projects()
	require.Len(t, projects, 3)
	assert.InDelta(t, 50.0, projects[0].Progress, 1e-9, "demo progress is derived, never the stale stored value")

	_, found, err := repository.NewKVProjectRepo(kv).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, found, "seed is persisted")
}

func TestCreateProject_Defaults(t *testing.T) {
	clock := newFakeClock()
	s, _ := emptyProjectStore(t, WithClock(clock.Now))

	p, err := s.CreateProject(context.Background(), ProjectInput{
		Name:    "  Launch  ",
		EndDate: time.Date(2024, time.May, 1, 15, 30, 0, 0, time.UTC),
		OwnerID: "u1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Launch", p.Name)
	assert.Equal(t, domain.ProjectPlanning, p.Status)
	assert.Equal(t, domain.PriorityMedium, p.Priority)
	assert.Equal(t, testutil.Day(2024, time.March, 1), p.StartDate)
	assert.Equal(t, testutil.Day(2024, time.May, 1), p.EndDate)
	assert.Equal(t, []string{"u1"}, p.TeamMembers)
	assert.Empty(t, p.Tasks)
	assert.Zero(t, p.Progress)
	assert.Equal(t, clock.Now(), p.CreatedAt)
	assert.Equal(t, clock.Now(), p.UpdatedAt)
}

func TestCreateProject_Validation(t *testing.T) {
	s, _ := emptyProjectStore(t)
	ctx := context.Background()

	bad := []ProjectInput{
		{EndDate: testutil.Day(2024, 1, 1)},
		{Name: "x"},
		{Name: "x", Status: "archived", EndDate: testutil.Day(2024, 1, 1)},
		{Name: "x", Priority: "urgent", EndDate: testutil.Day(2024, 1, 1)},
		{Name: "x", StartDate: testutil.Day(2024, 2, 1), EndDate: testutil.Day(2024, 1, 1)},
	}
	for _, in := range bad {
		_, err := s.CreateProject(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation, "%+v", in)
	}
	assert.Empty(t, s.Projects())
}

func TestProgress_TwoTasksOneCompleted(t *testing.T) {
	s, _ := emptyProjectStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, projectInput("Demo"))
	require.NoError(t, err)
	assert.Zero(t, p.Progress)

	first, err := s.CreateTask(ctx, TaskInput{ProjectID: p.ID, Title: "one"})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, TaskInput{ProjectID: p.ID, Title: "two"})
	require.NoError(t, err)

	_, err = s.MoveTask(ctx, first.ID, domain.TaskCompleted)
	require.NoError(t, err)

	got, err := s.Project(p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, got.Progress, 1e-9)
}

func TestProgress_NeverStaleUnderRandomMutations(t *testing.T) {
	s, _ := emptyProjectStore(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	var projectIDs []string
	for _, name := range []string{"A", "B", "C"} {
		p, err := s.CreateProject(ctx, projectInput(name))
		require.NoError(t, err)
		projectIDs = append(projectIDs, p.ID)
	}

	for step := 0; step < 200; step++ {
		tasks := s.Tasks()
		switch op := rng.Intn(3); {
		case op == 0 || len(tasks) == 0:
			_, err := s.CreateTask(ctx, TaskInput{
				ProjectID: projectIDs[rng.Intn(len(projectIDs))],
				Title:     "task",
				Status:    domain.TaskStatuses[rng.Intn(len(domain.TaskStatuses))],
			})
			require.NoError(t, err)
		case op == 1:
			target := tasks[rng.Intn(len(tasks))]
			_, err := s.MoveTask(ctx, target.ID, domain.TaskStatuses[rng.Intn(len(domain.TaskStatuses))])
			require.NoError(t, err)
		default:
			require.NoError(t, s.DeleteTask(ctx, tasks[rng.Intn(len(tasks))].ID))
		}

		for _, p := range s.Projects() {
			require.InDelta(t, domain.ComputeProgress(p.Tasks), p.Progress, 1e-9, "step %d project %s", step, p.Name)
		}
	}
}

func TestUpdateProject(t *testing.T) {
	clock := newFakeClock()
	s, _ := emptyProjectStore(t, WithClock(clock.Now))
	ctx := context.Background()

	p, err := s.CreateProject(ctx, projectInput("Old"))
	require.NoError(t, err)
	clock.Advance(time.Hour)

	name := "New"
	status := domain.ProjectActive
	team := []string{"1", "2"}
	updated, err := s.UpdateProject(ctx, p.ID, ProjectPatch{Name: &name, Status: &status, TeamMembers: &team})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, domain.ProjectActive, updated.Status)
	assert.Equal(t, []string{"1", "2"}, updated.TeamMembers)
	assert.Equal(t, p.Description, updated.Description)
	assert.Equal(t, clock.Now(), updated.UpdatedAt)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)

	_, err = s.UpdateProject(ctx, "missing", ProjectPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	early := testutil.Day(2023, time.January, 1)
	_, err = s.UpdateProject(ctx, p.ID, ProjectPatch{EndDate: &early})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := s.Project(p.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Day(2024, time.June, 30), got.EndDate, "rejected patch is not applied")
}

func TestDeleteProject_RemovesTasksAndSelection(t *testing.T) {
	s, kv := emptyProjectStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, projectInput("Doomed"))
	require.NoError(t, err)
	keep, err := s.CreateProject(ctx, projectInput("Keep"))
	require.NoError(t, err)
	task, err := s.CreateTask(ctx, TaskInput{ProjectID: p.ID, Title: "child"})
	require.NoError(t, err)
	require.NoError(t, s.SetCurrent(ctx, p.ID))

	require.NoError(t, s.DeleteProject(ctx, p.ID))

	_, err = s.ProjectTasks(p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Task(task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, s.Current())
	assert.Len(t, s.Projects(), 1)

	reopened := newProjectStore(t, kv)
	assert.Nil(t, reopened.Current())
	require.Len(t, reopened.Projects(), 1)
	assert.Equal(t, keep.ID, reopened.Projects()[0].ID)

	assert.ErrorIs(t, s.DeleteProject(ctx, p.ID), domain.ErrNotFound)
}

func TestDeleteProject_KeepsOtherSelection(t *testing.T) {
	s, _ := emptyProjectStore(t)
	ctx := context.Background()

	a, err := s.CreateProject(ctx, projectInput("A"))
	require.NoError(t, err)
	b, err := s.CreateProject(ctx, projectInput("B"))
	require.NoError(t, err)
	require.NoError(t, s.SetCurrent(ctx, a.ID))

	require.NoError(t, s.DeleteProject(ctx, b.ID))
	require.NotNil(t, s.Current())
	assert.Equal(t, a.ID, s.Current().ID)
}

func TestSetCurrent(t *testing.T) {
	s, kv := emptyProjectStore(t)
	ctx := context.Background()
	p, err := s.CreateProject(ctx, projectInput("Pick me"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetCurrent(ctx, "missing"), domain.ErrNotFound)
	require.NoError(t, s.SetCurrent(ctx, p.ID))

	reopened := newProjectStore(t, kv)
	require.NotNil(t, reopened.Current())
	assert.Equal(t, "Pick me", reopened.Current().Name)

	require.NoError(t, reopened.SetCurrent(ctx, ""))
	assert.Nil(t, reopened.Current())
}

func TestCreateTask(t *testing.T) {
	clock := newFakeClock()
	s, _ := emptyProjectStore(t, WithClock(clock.Now))
	ctx := context.Background()
	p, err := s.CreateProject(ctx, projectInput("P"))
	require.NoError(t, err)
	clock.Advance(time.Minute)

	est := 4.0
	due := time.Date(2024, time.April, 2, 18, 0, 0, 0, time.UTC)
	task, err := s.CreateTask(ctx, TaskInput{
		ProjectID:      p.ID,
		Title:          "Write docs",
		AssigneeID:     "3",
		DueDate:        &due,
		EstimatedHours: &est,
		Tags:           []string{"docs"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskTodo, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, p.ID, task.ProjectID)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, testutil.Day(2024, time.April, 2), *task.DueDate)

	est = 99
	got, err := s.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, *got.EstimatedHours, "input pointers are not retained")

	proj, err := s.Project(p.ID)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), proj.UpdatedAt)
}

func TestCreateTask_Validation(t *testing.T) {
	s, _ := emptyProjectStore(t)
	ctx := context.Background()
	p, err := s.CreateProject(ctx, projectInput("P"))
	require.NoError(t, err)

	zero := 0.0
	negative := -2.0
	cases := []struct {
		in   TaskInput
		want error
	}{
		{TaskInput{ProjectID: p.ID}, domain.ErrValidation},
		{TaskInput{ProjectID: "missing", Title: "x"}, domain.ErrNotFound},
		{TaskInput{ProjectID: p.ID, Title: "x", Status: "blocked"}, domain.ErrValidation},
		{TaskInput{ProjectID: p.ID, Title: "x", Priority: "p0"}, domain.ErrValidation},
		{TaskInput{ProjectID: p.ID, Title: "x", EstimatedHours: &zero}, domain.ErrValidation},
		{TaskInput{ProjectID: p.ID, Title: "x", ActualHours: &negative}, domain.ErrValidation},
	}
	for _, tc := range cases {
		_, err := s.CreateTask(ctx, tc.in)
		assert.ErrorIs(t, err, tc.want, "%+v", tc.in)
	}
	tasks, err := s.ProjectTasks(p.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateTask(t *testing.T) {
	clock := newFakeClock()
	s, _ := emptyProjectStore(t, WithClock(clock.Now))
	ctx := context.Background()
	a, err := s.CreateProject(ctx, projectInput("A"))
	require.NoError(t, err)
	b, err := s.CreateProject(ctx, projectInput("B"))
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, TaskInput{ProjectID: a.ID, Title: "a-task"})
	require.NoError(t, err)
	due := testutil.Day(2024, time.May, 5)
	task, err := s.CreateTask(ctx, TaskInput{ProjectID: b.ID, Title: "b-task", DueDate: &due})
	require.NoError(t, err)
	clock.Advance(time.Hour)

	title := "renamed"
	status := domain.TaskCompleted
	updated, err := s.UpdateTask(ctx, task.ID, TaskPatch{Title: &title, Status: &status, ClearDueDate: true})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, domain.TaskCompleted, updated.Status)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, clock.Now(), updated.UpdatedAt)
	assert.Equal(t, b.ID, updated.ProjectID)

	gotB, err := s.Project(b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, gotB.Progress, 1e-9)
	gotA, err := s.Project(a.ID)
	require.NoError(t, err)
	assert.Zero(t, gotA.Progress)

	_, err = s.UpdateTask(ctx, "missing", TaskPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	empty := ""
	_, err = s.UpdateTask(ctx, task.ID, TaskPatch{Title: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteTask(t *testing.T) {
	s, _ := emptyProjectStore(t)
	ctx := context.Background()
	p, err := s.CreateProject(ctx, projectInput("P"))
	require.NoError(t, err)
	done, err := s.CreateTask(ctx, TaskInput{ProjectID: p.ID, Title: "done", Status: domain.TaskCompleted})
	require.NoError(t, err)
	open, err := s.CreateTask(ctx, TaskInput{ProjectID: p.ID, Title: "open"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, open.ID))

	got, err := s.Project(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, done.ID, got.Tasks[0].ID)
	assert.InDelta(t, 100.0, got.Progress, 1e-9)

	assert.ErrorIs(t, s.DeleteTask(ctx, open.ID), domain.ErrNotFound)
}

func TestProjectStore_RoundTrip(t *testing.T) {
	s, kv := emptyProjectStore(t)
	ctx := context.Background()
	p, err := s.CreateProject(ctx, projectInput("Persisted"))
	require.NoError(t, err)
	due := testutil.Day(2024, time.March, 3)
	hours := 2.5
	_, err = s.CreateTask(ctx, TaskInput{ProjectID: p.ID, Title: "t", DueDate: &due, ActualHours: &hours, Status: domain.TaskReview})
	require.NoError(t, err)

	reopened := newProjectStore(t, kv)
	assert.Equal(t, s.Projects(), reopened.Projects())
}

func TestProjectStore_SaveFailureLeavesStateUnchanged(t *testing.T) {
	base := storage.NewMemoryKV()
	require.NoError(t, repository.NewKVProjectRepo(base).Save(context.Background(), nil))
	kv := &testutil.FailOnNthWriteKV{KV: base}
	s := newProjectStore(t, kv)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, projectInput("Stable"))
	require.NoError(t, err)
	task, err := s.CreateTask(ctx, TaskInput{ProjectID: p.ID, Title: "t"})
	require.NoError(t, err)

	kv.FailAlways(errors.New("disk full"))

	_, err = s.MoveTask(ctx, task.ID, domain.TaskCompleted)
	require.Error(t, err)
	_, err = s.CreateProject(ctx, projectInput("Never"))
	require.Error(t, err)
	require.Error(t, s.DeleteProject(ctx, p.ID))
	require.Error(t, s.DeleteTask(ctx, task.ID))

	projects := s.Projects()
	require.Len(t, projects, 1)
	require.Len(t, projects[0].Tasks, 1)
	assert.Equal(t, domain.TaskTodo, projects[0].Tasks[0].Status)
	assert.Zero(t, projects[0].Progress)
}

func TestProjectStore_ReturnsCopies(t *testing.T) {
	s, _ := emptyProjectStore(t)
	ctx := context.Background()
	p, err := s.CreateProject(ctx, projectInput("P"))
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, TaskInput{ProjectID: p.ID, Title: "t"})
	require.NoError(t, err)

	projects := s.Projects()
	projects[0].Tasks[0].Title = "mutated"
	projects[0].Name = "mutated"

	got, err := s.Project(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "P", got.Name)
	assert.Equal(t, "t", got.Tasks[0].Title)
}

func TestProjectStore_ObservesMutations(t *testing.T) {
	obs := &recordingObserver{}
	s, _ := emptyProjectStore(t, WithObserver(obs))

	_, err := s.CreateProject(context.Background(), projectInput("Observed"))
	require.NoError(t, err)

	ev := obs.last()
	assert.Equal(t, "create-project", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, "Observed", ev.Fields["name"])
	assert.NotEmpty(t, ev.Fields["project_id"])
}
