// Package teatest runs bubbletea models synchronously in tests.
//
// A Driver calls Update directly and executes every returned Cmd in turn,
// feeding the resulting messages back into the model until nothing is
// left. Cmds that block past a short deadline, such as timers and cursor
// blinks, are dropped.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxSteps bounds how many messages one Send may process.
const maxSteps = 100

// cmdDeadline is how long a Cmd may run before it is dropped.
const cmdDeadline = 200 * time.Millisecond

// Driver owns a model and replays messages through it.
type Driver struct {
	tb    testing.TB
	model tea.Model
	quit  bool
}

// New wraps model. Pass WithSize to deliver a window size first.
func New(tb testing.TB, model tea.Model, opts ...Option) *Driver {
	tb.Helper()
	d := &Driver{tb: tb, model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(width, height int) Option {
	return func(d *Driver) {
		d.model, _ = d.model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
}

// Init runs the model's Init command and everything it leads to.
func (d *Driver) Init() {
	d.tb.Helper()
	d.run(d.model.Init())
}

// Send delivers msg and runs the resulting commands. It is a no-op once the
// model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.tb.Helper()
	if d.quit {
		return
	}
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	d.run(cmd)
}

// Keys presses each named key in order. Names follow tea.KeyMsg.String:
// "enter", "esc", "left", "ctrl+c", or a single character.
func (d *Driver) Keys(names ...string) {
	d.tb.Helper()
	for _, name := range names {
		d.Send(KeyMsg(name))
	}
}

// Type presses one rune key per character of s.
func (d *Driver) Type(s string) {
	d.tb.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Model returns the current model.
func (d *Driver) Model() tea.Model { return d.model }

// View renders the current model.
func (d *Driver) View() string { return d.model.View() }

// Quit reports whether the model returned tea.Quit.
func (d *Driver) Quit() bool { return d.quit }

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"ctrl+c":    tea.KeyCtrlC,
	" ":         tea.KeySpace,
}

// KeyMsg builds the key message whose String() is name.
func KeyMsg(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// run executes cmd and dispatches what it produces, breadth first.
func (d *Driver) run(cmd tea.Cmd) {
	d.tb.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > maxSteps {
			d.tb.Fatalf("teatest: more than %d messages processed; is a command looping?", maxSteps)
		}

		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := execute(next).(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			d.quit = true
			return
		default:
			var follow tea.Cmd
			d.model, follow = d.model.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// execute runs cmd, returning nil when it misses cmdDeadline.
func execute(cmd tea.Cmd) tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(cmdDeadline):
		return nil
	}
}
