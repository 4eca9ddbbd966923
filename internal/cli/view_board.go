package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/hubkit/internal/app"
	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/store"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// boardLoadedMsg carries a fresh board snapshot.
type boardLoadedMsg struct {
	board domain.Board
}

// taskMovedMsg reports the result of moving the selected card.
type taskMovedMsg struct {
	task domain.Task
	err  error
}

type boardKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Forward  key.Binding
	Backward key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "card")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "card")),
		Forward:  key.NewBinding(key.WithKeys(">", "L"), key.WithHelp(">", "advance")),
		Backward: key.NewBinding(key.WithKeys("<", "H"), key.WithHelp("<", "send back")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.Forward, k.Backward, k.Refresh, k.Quit}
}

// boardView is the interactive kanban board. Moving a card persists the
// new status and reloads the board with the cursor on the moved card.
type boardView struct {
	tasks  app.TaskUseCase
	filter store.TaskFilter
	nameOf formatter.NameFunc
	ctx    context.Context
	keys   boardKeyMap

	board    domain.Board
	cursor   formatter.BoardCursor
	focusID  string
	loading  bool
	status   string
	err      error
	quitting bool
}

func newBoardView(ctx context.Context, tasks app.TaskUseCase, filter store.TaskFilter, nameOf formatter.NameFunc) *boardView {
	return &boardView{
		tasks:   tasks,
		filter:  filter,
		nameOf:  nameOf,
		ctx:     ctx,
		keys:    defaultBoardKeys(),
		cursor:  formatter.BoardCursor{},
		loading: true,
	}
}

func (v *boardView) Init() tea.Cmd {
	return v.load()
}

func (v *boardView) load() tea.Cmd {
	tasks, filter := v.tasks, v.filter
	return func() tea.Msg {
		return boardLoadedMsg{board: tasks.Board(filter)}
	}
}

func (v *boardView) move(t domain.Task, status domain.TaskStatus) tea.Cmd {
	tasks, ctx := v.tasks, v.ctx
	return func() tea.Msg {
		moved, err := tasks.MoveTask(ctx, t.ID, status)
		return taskMovedMsg{task: moved, err: err}
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		v.loading = false
		v.board = msg.board
		v.placeCursor()
		return v, nil

	case taskMovedMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.focusID = msg.task.ID
		v.status = fmt.Sprintf("Moved %s to %s", msg.task.Title, formatter.TaskStatusLabel(msg.task.Status))
		return v, v.load()

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *boardView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		v.quitting = true
		return v, tea.Quit
	case key.Matches(msg, v.keys.Left):
		v.shiftColumn(-1)
	case key.Matches(msg, v.keys.Right):
		v.shiftColumn(1)
	case key.Matches(msg, v.keys.Up):
		if v.cursor.Row > 0 {
			v.cursor.Row--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor.Row < len(v.columnTasks())-1 {
			v.cursor.Row++
		}
	case key.Matches(msg, v.keys.Forward):
		return v, v.step(domain.NextStatus)
	case key.Matches(msg, v.keys.Backward):
		return v, v.step(domain.PrevStatus)
	case key.Matches(msg, v.keys.Refresh):
		v.status = ""
		if t, ok := v.Selected(); ok {
			v.focusID = t.ID
		}
		return v, v.load()
	}
	return v, nil
}

func (v *boardView) step(next func(domain.TaskStatus) (domain.TaskStatus, bool)) tea.Cmd {
	t, ok := v.Selected()
	if !ok {
		return nil
	}
	status, ok := next(t.Status)
	if !ok {
		return nil
	}
	return v.move(t, status)
}

func (v *boardView) shiftColumn(delta int) {
	n := len(v.board.Columns)
	if n == 0 {
		return
	}
	v.cursor.Column = min(max(v.cursor.Column+delta, 0), n-1)
	v.cursor.Row = min(v.cursor.Row, max(len(v.columnTasks())-1, 0))
}

func (v *boardView) columnTasks() []domain.Task {
	if v.cursor.Column < 0 || v.cursor.Column >= len(v.board.Columns) {
		return nil
	}
	return v.board.Columns[v.cursor.Column].Tasks
}

// Selected returns the task under the cursor.
func (v *boardView) Selected() (domain.Task, bool) {
	tasks := v.columnTasks()
	if v.cursor.Row < 0 || v.cursor.Row >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[v.cursor.Row], true
}

// placeCursor moves the cursor onto focusID if it is on the board, and
// otherwise clamps it to the current column.
func (v *boardView) placeCursor() {
	if v.focusID != "" {
		for ci, col := range v.board.Columns {
			for ri, t := range col.Tasks {
				if t.ID == v.focusID {
					v.cursor = formatter.BoardCursor{Column: ci, Row: ri}
					v.focusID = ""
					return
				}
			}
		}
		v.focusID = ""
	}
	v.shiftColumn(0)
}

func (v *boardView) View() string {
	if v.quitting {
		return ""
	}
	if v.loading {
		return "\n  " + formatter.Dim("Loading board...")
	}

	var b strings.Builder
	b.WriteString(formatter.FormatBoard(v.board, v.cursor, v.nameOf))
	b.WriteString("\n\n")
	switch {
	case v.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	case v.status != "":
		b.WriteString(formatter.StyleGreen.Render(v.status) + "\n")
	}

	hints := make([]string, 0, len(v.keys.ShortHelp()))
	for _, k := range v.keys.ShortHelp() {
		h := k.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	b.WriteString(formatter.Dim(strings.Join(hints, "  ")))
	return b.String()
}
