package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/importer"
	"github.com/alexanderramin/hubkit/internal/store"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *ProjectApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "project",
		Aliases:           []string{"projects", "p"},
		Short:             "Manage projects",
		PersistentPreRunE: signedIn(app),
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectSelectCmd(app),
		newProjectImportCmd(app),
	)
	return cmd
}

// projectFlags holds the values shared by project add and update.
type projectFlags struct {
	name, description string
	status, priority  string
	start, end        string
	owner             string
	team              []string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.description, "description", "", "Project description")
	cmd.Flags().StringVar(&f.status, "status", "", "Status (planning|active|completed|on-hold)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.owner, "owner", "", "Owner user ID (defaults to you)")
	cmd.Flags().StringSliceVar(&f.team, "team", nil, "Team member user IDs")
}

func newProjectAddCmd(app *ProjectApp) *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Create a new project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(app.Session, "projecthub")
			if err != nil {
				return err
			}
			if len(args) == 1 {
				f.name = args[0]
			}
			if (f.name == "" || f.end == "") && isInteractive(app.IsInteractive) {
				if err := projectForm(&f.name, &f.description, &f.end).Run(); err != nil {
					return formErr(cmd, err)
				}
			}
			if f.name == "" {
				return fmt.Errorf("%w: project name is required", domain.ErrValidation)
			}

			in := store.ProjectInput{
				Name:        f.name,
				Description: f.description,
				Status:      domain.ProjectStatus(f.status),
				Priority:    domain.Priority(f.priority),
				OwnerID:     f.owner,
				TeamMembers: f.team,
			}
			if in.OwnerID == "" {
				in.OwnerID = user.ID
			}
			if in.StartDate, err = parseDate("start", f.start); err != nil {
				return err
			}
			if in.EndDate, err = parseDate("end", f.end); err != nil {
				return err
			}

			p, err := app.Projects.CreateProject(cmd.Context(), in)
			if err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Project created", fmt.Sprintf("%s has been created", p.Name))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(p, app.nameOf, app.now()))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newProjectListCmd(app *ProjectApp) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := app.Projects.Projects()
			if status != "" && status != store.FilterAll {
				kept := projects[:0]
				for _, p := range projects {
					if string(p.Status) == status {
						kept = append(kept, p)
					}
				}
				projects = kept
			}
			currentID := ""
			if cur := app.Projects.Current(); cur != nil {
				currentID = cur.ID
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, currentID, app.nameOf, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only show projects with this status")
	return cmd
}

func newProjectShowCmd(app *ProjectApp) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a project (defaults to the selected one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := projectArg(app, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatProject(p, app.nameOf, app.now()))

			loads, err := app.Insights.Workload(p.ID)
			if err != nil {
				return err
			}
			if len(loads) > 0 {
				rows := make([][]string, 0, len(loads))
				for _, l := range loads {
					rows = append(rows, []string{app.nameOf(l.UserID), fmt.Sprintf("%d", l.Tasks), fmt.Sprintf("%d", l.Completed)})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.Header("Team workload"))
				fmt.Fprintln(out, formatter.RenderTable([]string{"MEMBER", "TASKS", "DONE"}, rows, 1, 2))
			}
			return nil
		},
	}
}

func newProjectUpdateCmd(app *ProjectApp) *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app.Projects.Projects(), args[0])
			if err != nil {
				return err
			}

			var patch store.ProjectPatch
			changed := cmd.Flags().Changed
			if changed("name") {
				patch.Name = &f.name
			}
			if changed("description") {
				patch.Description = &f.description
			}
			if changed("status") {
				s := domain.ProjectStatus(f.status)
				patch.Status = &s
			}
			if changed("priority") {
				pr := domain.Priority(f.priority)
				patch.Priority = &pr
			}
			if changed("start") {
				d, err := parseDate("start", f.start)
				if err != nil {
					return err
				}
				patch.StartDate = &d
			}
			if changed("end") {
				d, err := parseDate("end", f.end)
				if err != nil {
					return err
				}
				patch.EndDate = &d
			}
			if changed("owner") {
				patch.OwnerID = &f.owner
			}
			if changed("team") {
				patch.TeamMembers = &f.team
			}

			updated, err := app.Projects.UpdateProject(cmd.Context(), p.ID, patch)
			if err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Project updated", fmt.Sprintf("%s has been updated", updated.Name))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(updated, app.nameOf, app.now()))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newProjectRemoveCmd(app *ProjectApp) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a project and its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app.Projects.Projects(), args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !isInteractive(app.IsInteractive) {
					return fmt.Errorf("refusing to delete %q without --yes", p.Name)
				}
				title := fmt.Sprintf("Delete %s and its %d task(s)?", p.Name, len(p.Tasks))
				if err := confirmForm(title, &yes).Run(); err != nil {
					return formErr(cmd, err)
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Projects.DeleteProject(cmd.Context(), p.ID); err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Project deleted", fmt.Sprintf("%s has been deleted", p.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s.\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newProjectSelectCmd(app *ProjectApp) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "select [ID]",
		Short: "Select the project task commands default to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if clear {
				if err := app.Projects.SetCurrent(cmd.Context(), ""); err != nil {
					return err
				}
				fmt.Fprintln(out, "Selection cleared.")
				return nil
			}
			if len(args) == 0 {
				if cur := app.Projects.Current(); cur != nil {
					fmt.Fprintf(out, "Selected: %s (%s)\n", cur.Name, formatter.TruncID(cur.ID))
				} else {
					fmt.Fprintln(out, "No project selected.")
				}
				return nil
			}

			p, err := resolveProject(app.Projects.Projects(), args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.SetCurrent(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(out, "Selected: %s (%s)\n", p.Name, formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the selection")
	return cmd
}

func newProjectImportCmd(app *ProjectApp) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create a project and its tasks from a YAML or JSON plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(app.Session, "projecthub")
			if err != nil {
				return err
			}
			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}
			plan, err := importer.Convert(schema, user.ID)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid, %d task(s).\n", plan.Project.Name, len(plan.Tasks))
				return nil
			}

			p, err := importer.Import(cmd.Context(), importTarget{app.Projects, app.Tasks}, plan)
			if err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Project imported",
				fmt.Sprintf("%s with %d task(s)", p.Name, len(p.Tasks)))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(p, app.nameOf, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without creating anything")
	return cmd
}

// projectArg resolves args[0], or the selected project when args is empty.
func projectArg(app *ProjectApp, args []string) (domain.Project, error) {
	if len(args) == 1 {
		return resolveProject(app.Projects.Projects(), args[0])
	}
	if cur := app.Projects.Current(); cur != nil {
		return *cur, nil
	}
	return domain.Project{}, fmt.Errorf("no project selected: pass an ID or run 'projecthub project select ID'")
}

// parseDate parses a YYYY-MM-DD flag value; empty yields the zero time.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s date %q must be YYYY-MM-DD", domain.ErrValidation, field, value)
	}
	return t, nil
}
