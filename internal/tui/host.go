package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/ticker/internal/schedule"
)

// timeoutMsg delivers a coarse wait back to the Update goroutine.
type timeoutMsg struct{ f func() }

// frameMsg marks a repaint boundary.
type frameMsg struct{}

// teaHost adapts Bubble Tea's command model to schedule.Host. Every callback
// runs inside Model.Update, so the widget stays single-threaded. Scheduling
// calls queue commands that Update hands back to the runtime.
type teaHost struct {
	epoch   time.Time
	frame   time.Duration
	pending []tea.Cmd

	frames       []func(time.Duration)
	frameWaiting bool
}

var _ schedule.Host = (*teaHost)(nil)

func newTeaHost(frame time.Duration) *teaHost {
	if frame <= 0 {
		frame = time.Second / 60
	}
	return &teaHost{epoch: time.Now(), frame: frame}
}

func (h *teaHost) Now() time.Duration {
	return time.Since(h.epoch)
}

func (h *teaHost) AfterFunc(d time.Duration, f func()) {
	if d < 0 {
		d = 0
	}
	h.pending = append(h.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timeoutMsg{f: f}
	}))
}

// RequestFrame registers f for the next frame. tea.Every fires on the next
// multiple of the frame interval, which is where the renderer repaints.
func (h *teaHost) RequestFrame(f func(now time.Duration)) {
	h.frames = append(h.frames, f)
	if h.frameWaiting {
		return
	}
	h.frameWaiting = true
	h.pending = append(h.pending, tea.Every(h.frame, func(time.Time) tea.Msg {
		return frameMsg{}
	}))
}

func (h *teaHost) flushFrames() {
	frames := h.frames
	h.frames = nil
	h.frameWaiting = false
	now := h.Now()
	for _, f := range frames {
		f(now)
	}
}

// drain returns the commands queued since the last call.
func (h *teaHost) drain() tea.Cmd {
	if len(h.pending) == 0 {
		return nil
	}
	cmds := h.pending
	h.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
