package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/store"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *ProjectApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "task",
		Aliases:           []string{"tasks", "t"},
		Short:             "Manage tasks",
		PersistentPreRunE: signedIn(app),
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskMoveCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

// taskFlags holds the values shared by task add and update.
type taskFlags struct {
	project          string
	title            string
	description      string
	status, priority string
	assignee         string
	due              string
	clearDue         bool
	estimate, actual float64
	tags             []string
}

func (f *taskFlags) register(cmd *cobra.Command, withProject bool) {
	if withProject {
		cmd.Flags().StringVar(&f.project, "project", "", "Project ID or name (defaults to the selected project)")
	}
	cmd.Flags().StringVar(&f.title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.description, "description", "", "Task description")
	cmd.Flags().StringVar(&f.status, "status", "", "Status (todo|in-progress|review|completed)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&f.assignee, "assignee", "", "Assignee user ID ('me' for yourself)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&f.estimate, "estimate", 0, "Estimated hours")
	cmd.Flags().Float64Var(&f.actual, "actual", 0, "Actual hours")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "Comma-separated tags")
}

// assigneeID expands "me" to the signed-in user.
func assigneeID(app *ProjectApp, value string) string {
	if value == store.FilterMe {
		if u := app.Session.Current(); u != nil {
			return u.ID
		}
	}
	return value
}

func newTaskAddCmd(app *ProjectApp) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add [TITLE]",
		Short: "Add a task to a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.title = args[0]
			}
			var p domain.Project
			var err error
			if f.project != "" {
				p, err = resolveProject(app.Projects.Projects(), f.project)
			} else {
				p, err = projectArg(app, nil)
			}
			if err != nil {
				return err
			}

			if f.title == "" && isInteractive(app.IsInteractive) {
				if f.priority == "" {
					f.priority = string(domain.PriorityMedium)
				}
				if err := taskForm(&f.title, &f.priority, &f.due).Run(); err != nil {
					return formErr(cmd, err)
				}
			}
			if strings.TrimSpace(f.title) == "" {
				return fmt.Errorf("%w: task title is required", domain.ErrValidation)
			}

			in := store.TaskInput{
				ProjectID:   p.ID,
				Title:       f.title,
				Description: f.description,
				Status:      domain.TaskStatus(f.status),
				Priority:    domain.Priority(f.priority),
				AssigneeID:  assigneeID(app, f.assignee),
				Tags:        f.tags,
			}
			if f.due != "" {
				d, err := parseDate("due", f.due)
				if err != nil {
					return err
				}
				in.DueDate = &d
			}
			if cmd.Flags().Changed("estimate") {
				in.EstimatedHours = &f.estimate
			}
			if cmd.Flags().Changed("actual") {
				in.ActualHours = &f.actual
			}

			t, err := app.Tasks.CreateTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Task created", fmt.Sprintf("%s added to %s", t.Title, p.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s %s\n", formatter.TruncID(t.ID), formatter.Bold(t.Title))
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func newTaskListCmd(app *ProjectApp) *cobra.Command {
	var filter store.TaskFilter

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, by default in the selected project",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := taskFilter(app, filter)
			if err != nil {
				return err
			}
			var projectName formatter.NameFunc
			if f.ProjectID == "" || f.ProjectID == store.FilterAll {
				projectName = projectNames(app)
			}
			tasks := app.Tasks.FilterTasks(f)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, projectName, app.nameOf, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Match title or description")
	cmd.Flags().StringVar(&filter.Status, "status", store.FilterAll, "Status filter")
	cmd.Flags().StringVar(&filter.Assignee, "assignee", store.FilterAll, "Assignee filter (me|all|user ID)")
	cmd.Flags().StringVar(&filter.ProjectID, "project", "", "Project ID or name, or 'all'")
	return cmd
}

// taskFilter resolves the project flag and fills in the current user.
// An empty project means the selected one, or all when none is selected.
func taskFilter(app *ProjectApp, f store.TaskFilter) (store.TaskFilter, error) {
	if u := app.Session.Current(); u != nil {
		f.CurrentUserID = u.ID
	}
	switch f.ProjectID {
	case store.FilterAll:
	case "":
		if cur := app.Projects.Current(); cur != nil {
			f.ProjectID = cur.ID
		}
	default:
		p, err := resolveProject(app.Projects.Projects(), f.ProjectID)
		if err != nil {
			return f, err
		}
		f.ProjectID = p.ID
	}
	return f, nil
}

func projectNames(app *ProjectApp) formatter.NameFunc {
	byID := make(map[string]string)
	for _, p := range app.Projects.Projects() {
		byID[p.ID] = p.Name
	}
	return func(id string) string { return byID[id] }
}

func newTaskUpdateCmd(app *ProjectApp) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app.Tasks.Tasks(), args[0])
			if err != nil {
				return err
			}

			var patch store.TaskPatch
			changed := cmd.Flags().Changed
			if changed("title") {
				patch.Title = &f.title
			}
			if changed("description") {
				patch.Description = &f.description
			}
			if changed("status") {
				s := domain.TaskStatus(f.status)
				patch.Status = &s
			}
			if changed("priority") {
				p := domain.Priority(f.priority)
				patch.Priority = &p
			}
			if changed("assignee") {
				a := assigneeID(app, f.assignee)
				patch.AssigneeID = &a
			}
			if changed("due") {
				d, err := parseDate("due", f.due)
				if err != nil {
					return err
				}
				patch.DueDate = &d
			}
			patch.ClearDueDate = f.clearDue
			if changed("estimate") {
				patch.EstimatedHours = &f.estimate
			}
			if changed("actual") {
				patch.ActualHours = &f.actual
			}
			if changed("tags") {
				patch.Tags = &f.tags
			}

			updated, err := app.Tasks.UpdateTask(cmd.Context(), t.ID, patch)
			if err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Task updated", fmt.Sprintf("%s has been updated", updated.Title))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList([]domain.Task{updated}, nil, app.nameOf, app.now()))
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().BoolVar(&f.clearDue, "clear-due", false, "Remove the due date")
	return cmd
}

func newTaskMoveCmd(app *ProjectApp) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID STATUS",
		Short: "Move a task to another board column",
		Long:  "Move a task to todo, in-progress, review or completed. 'next' and 'prev' step one column.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app.Tasks.Tasks(), args[0])
			if err != nil {
				return err
			}
			target := domain.TaskStatus(args[1])
			switch args[1] {
			case "next":
				target, _ = domain.NextStatus(t.Status)
			case "prev":
				target, _ = domain.PrevStatus(t.Status)
			}
			if target == t.Status {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already in %s.\n", t.Title, formatter.TaskStatusLabel(t.Status))
				return nil
			}

			moved, err := app.Tasks.MoveTask(cmd.Context(), t.ID, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s.\n", moved.Title, formatter.TaskStatusLabel(moved.Status))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *ProjectApp) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app.Tasks.Tasks(), args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.DeleteTask(cmd.Context(), t.ID); err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Task deleted", fmt.Sprintf("%s has been deleted", t.Title))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s.\n", t.Title)
			return nil
		},
	}
}
