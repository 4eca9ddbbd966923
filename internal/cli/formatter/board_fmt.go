package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// BoardColumnWidth is the rendered width of one kanban column.
const BoardColumnWidth = 28

// BoardCursor marks the selected card. Column -1 renders no selection.
type BoardCursor struct {
	Column int
	Row    int
}

// NoCursor renders a board without a selected card.
var NoCursor = BoardCursor{Column: -1}

// FormatBoard renders the columns side by side with one card per task.
func FormatBoard(board domain.Board, cursor BoardCursor, nameOf NameFunc) string {
	cols := make([]string, 0, len(board.Columns))
	for ci, col := range board.Columns {
		var b strings.Builder
		title := fmt.Sprintf("%s (%d)", TaskStatusLabel(col.Status), len(col.Tasks))
		b.WriteString(StyleHeader.Render(title) + "\n")
		b.WriteString(StyleDim.Render(strings.Repeat("─", BoardColumnWidth-2)) + "\n")
		if len(col.Tasks) == 0 {
			b.WriteString(Dim("empty") + "\n")
		}
		for ri, t := range col.Tasks {
			selected := ci == cursor.Column && ri == cursor.Row
			b.WriteString(card(t, selected, nameOf) + "\n")
		}
		cols = append(cols, lipgloss.NewStyle().Width(BoardColumnWidth).Render(strings.TrimRight(b.String(), "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func card(t domain.Task, selected bool, nameOf NameFunc) string {
	border := ColorDim
	if selected {
		border = ColorHeader
	}
	who := "unassigned"
	if t.AssigneeID != "" {
		who = nameOf(t.AssigneeID)
	}
	title := Bold(t.Title)
	if selected {
		title = StyleHeader.Render("▶ ") + title
	}
	body := title + "\n" + PriorityStyle(t.Priority).Render(string(t.Priority)) + " " + Dim(who)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(BoardColumnWidth - 4).
		Render(body)
}
