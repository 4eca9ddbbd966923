package cli

import (
	"fmt"

	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *ProjectApp) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash", "home"},
		Short:   "Summarise projects, tasks and deadlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(app.Session, "projecthub")
			if err != nil {
				return err
			}
			now := app.now()
			s := app.Insights.Stats(now, user.ID)
			data := formatter.DashboardData{
				UserName:          user.Name,
				TotalProjects:     s.TotalProjects,
				ActiveProjects:    s.ActiveProjects,
				CompletedProjects: s.CompletedProjects,
				TotalTasks:        s.TotalTasks,
				CompletedTasks:    s.CompletedTasks,
				MyTasks:           s.MyTasks,
				MyPendingTasks:    s.MyPendingTasks,
				Overdue:           s.OverdueTasks,
				RecentProjects:    s.RecentProjects,
				UpcomingDeadlines: s.UpcomingDeadlines,
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(data, app.nameOf, now))
			return nil
		},
	}
}
