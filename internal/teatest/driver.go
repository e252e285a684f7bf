// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned commands are run in place. Commands
// that wait on a clock (timer and progress ticks) do not return within
// cmdTimeout and are dropped, so tests advance time by sending tick messages
// themselves.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many chained commands one Send may run.
const maxDepth = 64

const cmdTimeout = 10 * time.Millisecond

// Driver holds the current model between messages.
type Driver struct {
	t     *testing.T
	model tea.Model

	// Quit is set once a command produced tea.QuitMsg.
	Quit bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before Init runs.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.model, _ = d.model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model and runs its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.run(d.model.Init(), 0)
	return d
}

// Model returns the latest model value.
func (d *Driver) Model() tea.Model { return d.model }

func (d *Driver) View() string { return d.model.View() }

// Send delivers msg and runs whatever commands follow from it. Messages
// sent after quitting are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	d.run(cmd, 0)
}

func (d *Driver) PressRune(r rune) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressSpace() {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressCtrlC() {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: stopped after %d chained commands", maxDepth)
		return
	}

	msg, ok := runWithTimeout(cmd)
	if !ok || msg == nil {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.run(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quit = true
		return
	}

	var next tea.Cmd
	d.model, next = d.model.Update(msg)
	d.run(next, depth+1)
}

func runWithTimeout(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}
