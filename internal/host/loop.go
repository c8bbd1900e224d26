// Package host provides the event loop that drives the ticker widget outside
// of the terminal UI.
package host

import (
	"context"
	"sync"
	"time"

	"github.com/fakeyudi/ticker/internal/schedule"
)

// DefaultFrameInterval is the repaint period used when none is configured.
const DefaultFrameInterval = time.Second / 60

// Loop is a single-goroutine event loop. Every callback it runs, whether
// posted, fired by a timer or delivered as a frame, executes on the goroutine
// that called Run, one at a time.
type Loop struct {
	FrameInterval time.Duration

	epoch time.Time
	queue chan func()
	done  chan struct{}

	mu     sync.Mutex
	frames []func(time.Duration)
}

var _ schedule.Host = (*Loop)(nil)

// NewLoop returns a loop whose clock starts at zero now.
func NewLoop() *Loop {
	return &Loop{
		FrameInterval: DefaultFrameInterval,
		epoch:         time.Now(),
		queue:         make(chan func(), 64),
		done:          make(chan struct{}),
	}
}

// Now returns the time elapsed since the loop was created. It reads the
// monotonic clock, so wall clock adjustments do not affect it.
func (l *Loop) Now() time.Duration {
	return time.Since(l.epoch)
}

// Post queues f to run on the loop goroutine. It reports false if the loop
// has already stopped. Post blocks while the queue is full.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- f:
		return true
	case <-l.done:
		return false
	}
}

// AfterFunc posts f to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, f func()) {
	if d < 0 {
		d = 0
	}
	time.AfterFunc(d, func() { l.Post(f) })
}

// RequestFrame registers f for the next frame. All frames requested before a
// frame boundary are delivered together with the same clock reading.
func (l *Loop) RequestFrame(f func(now time.Duration)) {
	l.mu.Lock()
	l.frames = append(l.frames, f)
	l.mu.Unlock()
}

// Run processes callbacks until ctx is cancelled. It must be called at most
// once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	interval := l.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-l.queue:
			f()
		case <-ticker.C:
			l.flushFrames()
		}
	}
}

func (l *Loop) flushFrames() {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	if len(frames) == 0 {
		return
	}
	now := l.Now()
	for _, f := range frames {
		f(now)
	}
}
