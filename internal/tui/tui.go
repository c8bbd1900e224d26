// Package tui provides a Bubble Tea TUI for the ticker widget.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/ticker/internal/segment"
	"github.com/fakeyudi/ticker/internal/widget"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	// One box per segment
	segmentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2).
			Align(lipgloss.Center)

	digitsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	overdueDigitsStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// Mode line under the segments
	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// ── Key bindings ─────────────────

type keyMap struct {
	Pause   key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Restart}, {k.Help, k.Quit}}
}

var defaultKeys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause/resume"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// AttributeMsg sets a widget attribute from outside the program, e.g. when
// the config file changes. Send it with tea.Program.Send.
type AttributeMsg struct {
	Name  string
	Value string
}

// ── Render target ────────────────────

// board keeps the latest text of every segment.
type board struct {
	text  map[segment.Name]string
	order []segment.Name // segments of the last complete tick
	cur   []segment.Name
	ticks int
}

func newBoard() *board {
	return &board{text: make(map[segment.Name]string)}
}

func (b *board) SetSegment(name segment.Name, text string) {
	b.text[name] = text
	b.cur = append(b.cur, name)
}

func (b *board) Flush() {
	b.order = b.cur
	b.cur = nil
	b.ticks++
}

// ── Model ────────────────────

// Options configure a Model.
type Options struct {
	Title         string // prefix of the title bar, default "ticker"
	Interval      time.Duration
	FrameInterval time.Duration
	Logger        *slog.Logger
}

// Model is the root Bubble Tea model for the TUI. The widget state lives
// behind pointers, so copies of Model made by the runtime share it.
type Model struct {
	ctrl  *widget.Controller
	host  *teaHost
	board *board
	keys  keyMap
	help  help.Model
	title string
	width int
}

// New creates a new TUI model around a widget configured by attrs.
func New(attrs *widget.Attributes, opts Options) Model {
	h := newTeaHost(opts.FrameInterval)
	b := newBoard()
	title := opts.Title
	if title == "" {
		title = "ticker"
	}
	return Model{
		ctrl: widget.NewController(h, b, attrs, widget.Options{
			Interval: opts.Interval,
			Logger:   opts.Logger,
		}),
		host:  h,
		board: b,
		keys:  defaultKeys,
		help:  help.New(),
		title: title,
	}
}

// Controller exposes the widget controller driven by this model.
func (m Model) Controller() *widget.Controller { return m.ctrl }

// ── Bubble Tea interface ───────────────

// Init mounts the widget.
func (m Model) Init() tea.Cmd {
	m.ctrl.Mounted()
	return m.host.drain()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timeoutMsg:
		msg.f()

	case frameMsg:
		m.host.flushFrames()

	case AttributeMsg:
		m.ctrl.SetAttribute(msg.Name, msg.Value)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctrl.Unmounted()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			if m.ctrl.State() == widget.Running {
				m.ctrl.Unmounted()
			} else {
				m.ctrl.Mounted()
			}
		case key.Matches(msg, m.keys.Restart):
			m.ctrl.Unmounted()
			m.ctrl.Mounted()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, m.host.drain()
}

func (m Model) View() string {
	// ── Row 1: title bar ──────────────────────────────────────────────────────
	title := titleStyle.Render("  " + m.heading())
	if m.width > 0 {
		title = titleStyle.Width(m.width).Render("  " + m.heading())
	}

	// ── Row 2: segments ───────────────────────────────────────────────────────
	names := m.board.order
	if len(names) == 0 {
		names = segment.All
	}
	overdue := m.overdue()
	var boxes []string
	for _, n := range names {
		text, ok := m.board.text[n]
		if !ok {
			text = "--"
		}
		digits := digitsStyle.Render(text)
		if overdue {
			digits = overdueDigitsStyle.Render(text)
		}
		boxes = append(boxes, segmentStyle.Render(
			lipgloss.JoinVertical(lipgloss.Center, digits, labelStyle.Render(string(n))),
		))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)

	// ── Row 3: mode line ──────────────────────────────────────────────────────
	status := m.status()
	if overdue {
		status += "  " + overdueStyle.Render("OVERDUE")
	}

	// ── Row N: help ───────────────────────────────────────────────────────────
	return lipgloss.JoinVertical(lipgloss.Left,
		title, "", row, "", "  "+status, "", "  "+m.help.View(m.keys))
}

// heading is the title bar text. It follows the live session, so a reloaded
// target shows up without restarting the program.
func (m Model) heading() string {
	s := m.ctrl.Session()
	switch {
	case s == nil:
		return m.title
	case s.Mode() == widget.Stopwatch:
		return m.title + " · stopwatch"
	default:
		return m.title + " · countdown to " + s.Target.Format(time.RFC3339)
	}
}

// status describes the running session, or that the widget is paused.
func (m Model) status() string {
	s := m.ctrl.Session()
	if s == nil {
		return dimStyle.Render("paused")
	}
	if s.Mode() == widget.Stopwatch {
		return modeStyle.Render("stopwatch")
	}
	label := "counting down to "
	if s.Direction == widget.Up {
		label = "counting up from "
	}
	return modeStyle.Render(label) + dimStyle.Render(s.Target.Format("2006-01-02 15:04:05 MST"))
}

// overdue reports whether the last tick carried a negative value. The sign is
// always on the first rendered segment.
func (m Model) overdue() bool {
	if len(m.board.order) == 0 {
		return false
	}
	return strings.HasPrefix(m.board.text[m.board.order[0]], "-")
}

// NewProgram wraps m in a full-screen Bubble Tea program.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}
