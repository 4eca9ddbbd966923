package cli

import (
	"fmt"

	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/alexanderramin/hubkit/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *ProjectApp) *cobra.Command {
	var filter store.TaskFilter

	cmd := &cobra.Command{
		Use:     "board [PROJECT]",
		Aliases: []string{"kanban"},
		Short:   "Show tasks as a kanban board",
		Long: "Show tasks grouped into To Do, In Progress, Review and Completed.\n" +
			"In a terminal the board is interactive: move the cursor with h/j/k/l\n" +
			"and push the selected card between columns with < and >.",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: signedIn(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				filter.ProjectID = args[0]
			}
			f, err := taskFilter(app, filter)
			if err != nil {
				return err
			}
			if !isInteractive(app.IsInteractive) {
				board := app.Tasks.Board(f)
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoard(board, formatter.NoCursor, app.nameOf))
				return nil
			}

			view := newBoardView(cmd.Context(), app.Tasks, f, app.nameOf)
			p := tea.NewProgram(view, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Match title or description")
	cmd.Flags().StringVar(&filter.Assignee, "assignee", store.FilterAll, "Assignee filter (me|all|user ID)")
	cmd.Flags().StringVar(&filter.ProjectID, "project", "", "Project ID or name, or 'all'")
	return cmd
}
