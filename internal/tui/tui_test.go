package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/ticker/internal/segment"
	"github.com/fakeyudi/ticker/internal/widget"
)

func newTestModel(attrs map[string]string) Model {
	return New(widget.NewAttributes(attrs), Options{Title: "test"})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitMountsAndRendersImmediately(t *testing.T) {
	m := newTestModel(nil)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should schedule the first wait")
	}
	if m.Controller().State() != widget.Running {
		t.Fatalf("state = %v, want running", m.Controller().State())
	}
	if m.board.ticks != 1 {
		t.Errorf("board ticks = %d, want the initial render", m.board.ticks)
	}
	view := m.View()
	for _, want := range []string{"test", "seconds", "00", "stopwatch"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewBeforeMountShowsPlaceholders(t *testing.T) {
	m := newTestModel(nil)
	view := m.View()
	if !strings.Contains(view, "--") || !strings.Contains(view, "paused") {
		t.Errorf("expected placeholders and paused status:\n%s", view)
	}
}

func TestTimeoutAndFrameMessagesRunCallbacks(t *testing.T) {
	m := newTestModel(nil)
	ran := false
	m.host.AfterFunc(-time.Second, func() { ran = true })
	cmd := m.host.drain()
	if cmd == nil {
		t.Fatal("expected a queued command")
	}
	msg := cmd()
	if _, ok := msg.(timeoutMsg); !ok {
		t.Fatalf("command produced %T, want timeoutMsg", msg)
	}
	m, _ = update(t, m, msg)
	if !ran {
		t.Error("timeout callback did not run")
	}

	var got []time.Duration
	m.host.RequestFrame(func(now time.Duration) { got = append(got, now) })
	m.host.RequestFrame(func(now time.Duration) { got = append(got, now) })
	if len(m.host.pending) != 1 {
		t.Fatalf("two frame requests queued %d commands, want 1", len(m.host.pending))
	}
	frame := m.host.drain()()
	m, _ = update(t, m, frame)
	if len(got) != 2 || got[0] != got[1] {
		t.Errorf("frames delivered %v, want two with the same reading", got)
	}
}

func TestAttributeMsgRestartsAsCountdown(t *testing.T) {
	m := newTestModel(nil)
	m.Init()
	before := m.Controller().Session().ID

	target := time.Now().Add(2 * time.Hour).Format(time.RFC3339)
	m, _ = update(t, m, AttributeMsg{Name: widget.AttrTarget, Value: target})

	s := m.Controller().Session()
	if s.ID == before {
		t.Fatal("attribute change did not restart the session")
	}
	if s.Mode() != widget.Countdown {
		t.Errorf("mode = %v, want countdown", s.Mode())
	}
	if !strings.Contains(m.View(), "counting down to") {
		t.Errorf("view does not show countdown status:\n%s", m.View())
	}
}

func TestHeadingFollowsReloadedTarget(t *testing.T) {
	m := newTestModel(nil)
	if got := m.heading(); got != "test" {
		t.Errorf("heading before mount = %q", got)
	}
	m.Init()
	if got := m.heading(); got != "test · stopwatch" {
		t.Errorf("heading = %q, want stopwatch", got)
	}

	m, _ = update(t, m, AttributeMsg{Name: widget.AttrTarget, Value: "2030-01-01T00:00:00Z"})
	if got := m.heading(); got != "test · countdown to 2030-01-01T00:00:00Z" {
		t.Errorf("heading after target = %q", got)
	}
	if !strings.Contains(m.View(), "countdown to 2030-01-01T00:00:00Z") {
		t.Errorf("title bar not updated:\n%s", m.View())
	}

	m, _ = update(t, m, AttributeMsg{Name: widget.AttrTarget, Value: ""})
	if got := m.heading(); got != "test · stopwatch" {
		t.Errorf("heading after clearing target = %q", got)
	}
}

func TestPauseResumeAndRestartKeys(t *testing.T) {
	m := newTestModel(nil)
	m.Init()
	first := m.Controller().Session().ID

	m, _ = update(t, m, runes("p"))
	if m.Controller().State() != widget.Idle {
		t.Fatalf("pause: state = %v", m.Controller().State())
	}
	m, _ = update(t, m, runes("p"))
	if m.Controller().State() != widget.Running {
		t.Fatalf("resume: state = %v", m.Controller().State())
	}

	resumed := m.Controller().Session().ID
	m, _ = update(t, m, runes("r"))
	restarted := m.Controller().Session().ID
	if first == resumed || resumed == restarted {
		t.Errorf("expected a new session on resume and on restart: %s %s %s", first, resumed, restarted)
	}
}

func TestQuitUnmounts(t *testing.T) {
	m := newTestModel(nil)
	m.Init()
	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if m.Controller().State() != widget.Idle {
		t.Errorf("state after quit = %v", m.Controller().State())
	}
}

func TestOverdueIsShown(t *testing.T) {
	target := time.Now().Add(-90 * time.Second).Format(time.RFC3339)
	m := newTestModel(map[string]string{widget.AttrTarget: target})
	m.Init()
	if !m.overdue() {
		t.Fatalf("expected overdue, board = %v", m.board.text)
	}
	if !strings.Contains(m.View(), "OVERDUE") {
		t.Errorf("view missing overdue marker:\n%s", m.View())
	}
}

func TestPlainTargetWritesOneLinePerTick(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainTarget(&buf)
	for _, n := range segment.All {
		p.SetSegment(n, "0"+string(n)[:1])
	}
	p.Flush()
	p.SetSegment(segment.Minutes, "01")
	p.SetSegment(segment.Seconds, "02")
	p.Flush()

	want := "0d:0h:0m:0s\n01:02\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if p.Err() != nil {
		t.Errorf("Err() = %v", p.Err())
	}
}
