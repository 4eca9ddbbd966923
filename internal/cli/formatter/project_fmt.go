package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// NameFunc resolves a user id to a display name.
type NameFunc func(id string) string

func names(ids []string, nameOf NameFunc) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = nameOf(id)
	}
	return strings.Join(out, ", ")
}

// FormatProjectList renders projects with status, priority and progress.
// The current project is marked with an arrow.
func FormatProjectList(projects []domain.Project, currentID string, nameOf NameFunc, now time.Time) string {
	if len(projects) == 0 {
		return Dim("No projects found.")
	}
	headers := []string{"", "ID", "NAME", "STATUS", "PRIORITY", "PROGRESS", "OWNER", "ENDS"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		marker := ""
		if p.ID == currentID {
			marker = StyleHeader.Render("➜")
		}
		end := p.EndDate
		rows = append(rows, []string{
			marker,
			TruncID(p.ID),
			Bold(p.Name),
			ProjectStatusPill(p.Status),
			PriorityBadge(p.Priority),
			RenderProgress(p.Progress, 10),
			nameOf(p.OwnerID),
			DueLabel(&end, now),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProject renders a project card with its metadata and task summary.
func FormatProject(p domain.Project, nameOf NameFunc, now time.Time) string {
	var meta strings.Builder
	meta.WriteString(StyleBold.Render(p.Name) + "\n")
	if p.Description != "" {
		meta.WriteString(Dim(p.Description) + "\n")
	}
	meta.WriteString("\n")
	field := func(label, value string) {
		fmt.Fprintf(&meta, "%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value)
	}
	field("ID", p.ID)
	field("STATUS", ProjectStatusPill(p.Status))
	field("PRIORITY", PriorityBadge(p.Priority))
	field("START", ShortDate(p.StartDate))
	end := p.EndDate
	field("END", ShortDate(p.EndDate)+" "+Dim("(")+DueLabel(&end, now)+Dim(")"))
	field("OWNER", nameOf(p.OwnerID))
	field("TEAM", names(p.TeamMembers, nameOf))
	field("PROGRESS", RenderProgress(p.Progress, 20))

	left := lipgloss.NewStyle().Width(52).Render(strings.TrimRight(meta.String(), "\n"))
	right := taskCounts(p.Tasks)
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func taskCounts(tasks []domain.Task) string {
	board := domain.GroupByStatus(tasks)
	var b strings.Builder
	b.WriteString(StyleHeader.Render("TASKS") + " " + Dim(strconv.Itoa(len(tasks))) + "\n")
	for _, col := range board.Columns {
		fmt.Fprintf(&b, "%s %d\n", TaskStatusPill(col.Status), len(col.Tasks))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTaskList renders tasks across projects. projectName may be nil to
// hide the project column.
func FormatTaskList(tasks []domain.Task, projectName NameFunc, nameOf NameFunc, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks found.")
	}
	headers := []string{"ID", "TITLE", "STATUS", "PRIORITY", "ASSIGNEE", "DUE", "HOURS"}
	if projectName != nil {
		headers = append(headers, "PROJECT")
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		title := Bold(t.Title)
		if t.IsOverdue(now) {
			title += " " + StyleRed.Render("overdue")
		}
		assignee := Dim("--")
		if t.AssigneeID != "" {
			assignee = nameOf(t.AssigneeID)
		}
		row := []string{
			TruncID(t.ID),
			title,
			TaskStatusPill(t.Status),
			PriorityBadge(t.Priority),
			assignee,
			DueLabel(t.DueDate, now),
			Hours(t.ActualHours) + Dim(" / "+Hours(t.EstimatedHours)),
		}
		if projectName != nil {
			row = append(row, projectName(t.ProjectID))
		}
		rows = append(rows, row)
	}
	return RenderBox(fmt.Sprintf("Tasks (%d)", len(tasks)), RenderTable(headers, rows))
}

// DashboardData is what FormatDashboard renders.
type DashboardData struct {
	UserName          string
	TotalProjects     int
	ActiveProjects    int
	CompletedProjects int
	TotalTasks        int
	CompletedTasks    int
	MyTasks           int
	MyPendingTasks    int
	Overdue           []domain.Task
	RecentProjects    []domain.Project
	UpcomingDeadlines []domain.Task
}

// FormatDashboard renders the stats tiles and the recent and upcoming lists.
func FormatDashboard(d DashboardData, nameOf NameFunc, now time.Time) string {
	tile := func(label string, value int, detail string) string {
		body := StyleBold.Render(strconv.Itoa(value)) + "\n" + Dim(label)
		if detail != "" {
			body += "\n" + detail
		}
		return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorDim).
			Padding(0, 2).Width(22).Render(body)
	}
	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Projects", d.TotalProjects, StyleGreen.Render(fmt.Sprintf("%d active", d.ActiveProjects))),
		tile("Tasks", d.TotalTasks, StyleGreen.Render(fmt.Sprintf("%d completed", d.CompletedTasks))),
		tile("My Tasks", d.MyTasks, StyleYellow.Render(fmt.Sprintf("%d pending", d.MyPendingTasks))),
		tile("Overdue", len(d.Overdue), StyleRed.Render("need attention")),
	)

	var b strings.Builder
	if d.UserName != "" {
		fmt.Fprintf(&b, "Welcome back, %s\n\n", Bold(d.UserName))
	}
	b.WriteString(tiles + "\n\n")

	b.WriteString(Header("Recent projects") + "\n")
	if len(d.RecentProjects) == 0 {
		b.WriteString(Dim("No projects yet.") + "\n")
	}
	for _, p := range d.RecentProjects {
		fmt.Fprintf(&b, "%s  %s  %s\n", RenderProgress(p.Progress, 10), Bold(p.Name), ProjectStatusPill(p.Status))
	}

	b.WriteString("\n" + Header("Upcoming deadlines") + "\n")
	if len(d.UpcomingDeadlines) == 0 {
		b.WriteString(Dim("Nothing due.") + "\n")
	}
	for _, t := range d.UpcomingDeadlines {
		fmt.Fprintf(&b, "%s  %s  %s  %s\n", DueLabel(t.DueDate, now), Bold(t.Title),
			PriorityBadge(t.Priority), Dim(nameOf(t.AssigneeID)))
	}
	return strings.TrimRight(b.String(), "\n")
}
