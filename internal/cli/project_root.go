package cli

import (
	"github.com/spf13/cobra"
)

// NewProjectRootCmd creates the top-level "projecthub" command and
// registers all project-management subcommands against app.
func NewProjectRootCmd(app *ProjectApp) *cobra.Command {
	cobra.EnableTraverseRunHooks = true

	root := &cobra.Command{
		Use:           "projecthub",
		Short:         "Plan projects and move tasks across a kanban board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return open(cmd, app.Open)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			printNotices(cmd, app.Notices)
		},
	}

	root.AddCommand(newSessionCmds(sessionDeps{
		binary:        "projecthub",
		session:       app.session,
		isInteractive: app.IsInteractive,
	})...)
	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newBoardCmd(app),
		newDashboardCmd(app),
	)
	return root
}

// signedIn guards a command group behind sign-in.
func signedIn(app *ProjectApp) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_, err := requireUser(app.Session, "projecthub")
		return err
	}
}
