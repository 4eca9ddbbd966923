package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly distance between t and now,
// counted in calendar days.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueLabel renders a due date relative to now, red when overdue or within
// two days and yellow within a week. A nil date renders as "--".
func DueLabel(due *time.Time, now time.Time) string {
	if due == nil {
		return Dim("--")
	}
	text := RelativeDateFrom(*due, now)
	days := int(math.Round(due.Sub(now).Hours() / 24))
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// ShortDate formats a calendar date like "Mar 10, 2024".
func ShortDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// ProjectStatusPill returns a colored status indicator for a project.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectPlanning:
		return StyleBlue.Render("○ Planning")
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("◌ On Hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// TaskStatusLabel is the column title for a task status.
func TaskStatusLabel(status domain.TaskStatus) string {
	switch status {
	case domain.TaskTodo:
		return "To Do"
	case domain.TaskInProgress:
		return "In Progress"
	case domain.TaskReview:
		return "Review"
	case domain.TaskCompleted:
		return "Completed"
	default:
		return string(status)
	}
}

// TaskStatusPill returns a colored status indicator for a task.
func TaskStatusPill(status domain.TaskStatus) string {
	label := TaskStatusLabel(status)
	switch status {
	case domain.TaskTodo:
		return StyleBlue.Render("○ " + label)
	case domain.TaskInProgress:
		return StyleYellow.Render("● " + label)
	case domain.TaskReview:
		return StylePurple.Render("◐ " + label)
	case domain.TaskCompleted:
		return StyleGreen.Render("✔ " + label)
	default:
		return StyleDim.Render(label)
	}
}

// OrderStatusPill returns a colored indicator for an order status.
func OrderStatusPill(status domain.OrderStatus) string {
	switch status {
	case domain.OrderDelivered:
		return StyleGreen.Render("✔ Delivered")
	case domain.OrderShipped:
		return StyleBlue.Render("➜ Shipped")
	case domain.OrderCancelled:
		return StyleRed.Render("✖ Cancelled")
	case domain.OrderProcessing:
		return StyleYellow.Render("● Processing")
	default:
		return StyleDim.Render("○ " + string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Hours formats an optional hour count, dropping a zero fraction.
func Hours(h *float64) string {
	if h == nil {
		return "--"
	}
	return strconv.FormatFloat(*h, 'f', -1, 64) + "h"
}

// Stars renders a 0 to 5 rating as filled and empty stars, rounding to
// the nearest whole star.
func Stars(rating float64) string {
	n := min(max(int(math.Round(rating)), 0), 5)
	return StyleYellow.Render(strings.Repeat("★", n)) + StyleDim.Render(strings.Repeat("☆", 5-n))
}
