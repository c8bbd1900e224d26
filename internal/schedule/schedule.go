// Package schedule runs a callback once per interval, re-aligned to an origin
// on every tick so that timing errors never accumulate.
package schedule

import (
	"sync/atomic"
	"time"
)

// Host supplies the clock and the two scheduling primitives the scheduler
// combines. Clock readings are offsets from an arbitrary host epoch and must
// be monotonically non-decreasing.
type Host interface {
	// Now returns the current host clock reading.
	Now() time.Duration
	// AfterFunc calls f once d has elapsed. A non-positive d means as soon as
	// possible.
	AfterFunc(d time.Duration, f func())
	// RequestFrame calls f once at the next repaint, passing the host clock
	// reading of that repaint.
	RequestFrame(f func(now time.Duration))
}

// Token is a cooperative cancellation flag shared between a session and the
// scheduler it started.
type Token struct {
	cancelled atomic.Bool
}

// NewToken returns a live token.
func NewToken() *Token { return &Token{} }

// Cancel marks the token cancelled. It is safe to call more than once.
func (t *Token) Cancel() { t.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool { return t.cancelled.Load() }

// Start invokes onTick roughly once per interval, anchored at origin: the
// k-th call happens at the repaint following origin + k*interval.
//
// Each cycle waits coarsely until just before the next boundary and then asks
// for a repaint, so updates land on a frame. The next boundary is derived by
// snapping the elapsed time to the nearest interval multiple, which absorbs
// any overshoot or undershoot of the previous wait.
//
// Cancellation is observed at the start of each frame callback. A wait that
// is already pending still fires but the frame it requests returns without
// calling onTick.
func Start(h Host, interval, origin time.Duration, tok *Token, onTick func(now time.Duration)) {
	if interval <= 0 {
		interval = time.Second
	}

	var frame func(now time.Duration)

	scheduleFrame := func(now time.Duration) {
		elapsed := now - origin
		rounded := roundToInterval(elapsed, interval)
		next := origin + rounded + interval
		delay := next - h.Now()
		h.AfterFunc(delay, func() { h.RequestFrame(frame) })
	}

	frame = func(now time.Duration) {
		if tok.Cancelled() {
			return
		}
		onTick(now)
		// onTick may have replaced its own session.
		if tok.Cancelled() {
			return
		}
		scheduleFrame(now)
	}

	scheduleFrame(origin)
}

// Nominal returns the interval boundary nearest to the reading now, i.e. the
// instant a tick delivered at now was scheduled for.
func Nominal(now, origin, interval time.Duration) time.Duration {
	if interval <= 0 {
		interval = time.Second
	}
	return origin + roundToInterval(now-origin, interval)
}

// roundToInterval snaps d to the nearest multiple of interval, rounding
// halves up.
func roundToInterval(d, interval time.Duration) time.Duration {
	q := d / interval
	r := d % interval
	if r < 0 {
		q--
		r += interval
	}
	if 2*r >= interval {
		q++
	}
	return q * interval
}
