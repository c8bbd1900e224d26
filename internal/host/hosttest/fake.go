// Package hosttest provides a deterministic virtual host for exercising the
// scheduler and the widget controller without real time passing.
package hosttest

import (
	"sort"
	"time"

	"github.com/fakeyudi/ticker/internal/schedule"
)

type timer struct {
	due time.Duration
	seq int
	f   func()
}

// Fake is a virtual clock with coarse timers and frame delivery. Nothing
// happens until Advance is called. It is not safe for concurrent use, which
// matches the single-threaded hosts it stands in for.
type Fake struct {
	// FrameInterval is the spacing of frame boundaries. Frames requested at
	// time t are delivered at the first boundary strictly after t.
	FrameInterval time.Duration
	// Jitter, when set, is added to every AfterFunc delay.
	Jitter func() time.Duration

	now    time.Duration
	seq    int
	timers []timer
	frames []func(time.Duration)

	// WaitsScheduled counts AfterFunc calls; FramesRequested counts
	// RequestFrame calls.
	WaitsScheduled  int
	FramesRequested int
}

var _ schedule.Host = (*Fake)(nil)

// New returns a fake host at clock reading zero with 16ms frames.
func New() *Fake {
	return &Fake{FrameInterval: 16 * time.Millisecond}
}

// Now returns the virtual clock reading.
func (f *Fake) Now() time.Duration { return f.now }

// AfterFunc schedules fn at now+d (plus jitter). Negative results fire at
// the current instant on the next Advance.
func (f *Fake) AfterFunc(d time.Duration, fn func()) {
	f.WaitsScheduled++
	if f.Jitter != nil {
		d += f.Jitter()
	}
	if d < 0 {
		d = 0
	}
	f.seq++
	f.timers = append(f.timers, timer{due: f.now + d, seq: f.seq, f: fn})
}

// RequestFrame queues fn for the next frame boundary.
func (f *Fake) RequestFrame(fn func(now time.Duration)) {
	f.FramesRequested++
	f.frames = append(f.frames, fn)
}

// Pending returns the number of timers and frames not yet delivered.
func (f *Fake) Pending() int {
	return len(f.timers) + len(f.frames)
}

// Advance moves the clock forward by d, running every timer and frame that
// falls due on the way, in time order. Callbacks may schedule more work,
// which also runs if it falls due before the end.
func (f *Fake) Advance(d time.Duration) {
	end := f.now + d
	for {
		at, isFrame, ok := f.nextEvent()
		if !ok || at > end {
			break
		}
		f.now = at
		if isFrame {
			f.flushFrames()
			continue
		}
		t := f.timers[0]
		f.timers = f.timers[1:]
		t.f()
	}
	f.now = end
}

// nextEvent returns the instant of the earliest pending event. Frames win
// ties with timers.
func (f *Fake) nextEvent() (time.Duration, bool, bool) {
	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].due != f.timers[j].due {
			return f.timers[i].due < f.timers[j].due
		}
		return f.timers[i].seq < f.timers[j].seq
	})

	var (
		at      time.Duration
		isFrame bool
		ok      bool
	)
	if len(f.frames) > 0 {
		at, isFrame, ok = f.nextBoundary(), true, true
	}
	if len(f.timers) > 0 && (!ok || f.timers[0].due < at) {
		at, isFrame, ok = f.timers[0].due, false, true
	}
	return at, isFrame, ok
}

func (f *Fake) nextBoundary() time.Duration {
	fi := f.FrameInterval
	if fi <= 0 {
		return f.now
	}
	return (f.now/fi + 1) * fi
}

func (f *Fake) flushFrames() {
	frames := f.frames
	f.frames = nil
	for _, fn := range frames {
		fn(f.now)
	}
}
