// Package focus is the countdown shown by "planwise focus".
package focus

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	clockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ebdbb2")).Bold(true)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
)

type keyMap struct {
	Pause key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Pause, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = keyMap{
	Pause: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "stop")),
}

// Model counts a focus session down to zero.
type Model struct {
	task  string
	total time.Duration

	timer    timer.Model
	progress progress.Model
	help     help.Model

	done    bool
	stopped bool
}

// New returns a session for task lasting d. Ticks arrive once per second.
func New(task string, d time.Duration) Model {
	return Model{
		task:     task,
		total:    d,
		timer:    timer.NewWithInterval(d, time.Second),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.timer.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		if w > 60 {
			w = 60
		}
		if w > 10 {
			m.progress.Width = w
		}
		return m, nil

	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.stopped = true
			return m, tea.Quit
		case key.Matches(msg, keys.Pause):
			return m, m.timer.Toggle()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Focus: "+m.task) + "\n\n")

	if m.done {
		b.WriteString(doneStyle.Render("Session complete. Take a break.") + "\n")
		return b.String()
	}

	b.WriteString("  " + clockStyle.Render(formatClock(m.Remaining())))
	if m.Paused() {
		b.WriteString("  " + pausedStyle.Render("paused"))
	}
	b.WriteString("\n\n  " + m.progress.ViewAs(m.Percent()) + "\n\n")
	b.WriteString("  " + m.help.View(keys) + "\n")
	return b.String()
}

// Remaining never goes below zero.
func (m Model) Remaining() time.Duration {
	if m.timer.Timeout < 0 {
		return 0
	}
	return m.timer.Timeout
}

func (m Model) Elapsed() time.Duration { return m.total - m.Remaining() }

// Percent is the share of the session already spent, in [0, 1].
func (m Model) Percent() float64 {
	if m.total <= 0 {
		return 1
	}
	return float64(m.Elapsed()) / float64(m.total)
}

func (m Model) Paused() bool { return !m.done && !m.timer.Running() }

// Completed reports whether the countdown reached zero.
func (m Model) Completed() bool { return m.done }

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mins := int(d%time.Hour) / int(time.Minute)
	secs := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// Result is how a session ended.
type Result struct {
	Completed bool
	Elapsed   time.Duration
}

// Run shows the countdown on out, reading keys from in, until the session
// finishes, the user stops it or ctx is cancelled.
func Run(ctx context.Context, task string, d time.Duration, in io.Reader, out io.Writer) (Result, error) {
	p := tea.NewProgram(New(task, d),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("running focus timer: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("focus timer returned %T", final)
	}
	return Result{Completed: m.Completed(), Elapsed: m.Elapsed()}, nil
}
