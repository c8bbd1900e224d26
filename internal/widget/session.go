package widget

import (
	"time"

	"github.com/fakeyudi/ticker/internal/schedule"
	"github.com/fakeyudi/ticker/internal/segment"
)

// Mode reports whether a session counts against a target.
type Mode int

const (
	Stopwatch Mode = iota
	Countdown
)

func (m Mode) String() string {
	if m == Countdown {
		return "countdown"
	}
	return "stopwatch"
}

// Session is one run of the timer. It is created by Start, never modified
// afterwards, and replaced wholesale on restart.
type Session struct {
	ID         string
	OriginTick time.Duration // host clock reading at start
	OriginWall time.Time     // wall clock reading at start
	Target     time.Time     // zero in stopwatch mode
	Direction  Direction
	Segments   []segment.Name
	Interval   time.Duration

	token *schedule.Token
}

// Mode returns Countdown when the session has a target.
func (s *Session) Mode() Mode {
	if s.Target.IsZero() {
		return Stopwatch
	}
	return Countdown
}

// Cancelled reports whether the session has been stopped or replaced.
func (s *Session) Cancelled() bool {
	return s.token.Cancelled()
}

// Diff returns the signed milliseconds to display for host reading now.
//
// In countdown mode it is the time left until the target (direction down) or
// the time since the target (direction up); wall time is reconstructed as
// OriginWall plus the host time elapsed since OriginTick. In stopwatch mode it
// is the host time elapsed since OriginTick.
func (s *Session) Diff(now time.Duration) int64 {
	elapsed := now - s.OriginTick
	if s.Mode() == Stopwatch {
		return elapsed.Milliseconds()
	}
	remaining := s.Target.Sub(s.OriginWall.Add(elapsed)).Milliseconds()
	if s.Direction == Up {
		return -remaining
	}
	return remaining
}

// Values decomposes the display value at host reading now.
func (s *Session) Values(now time.Duration) segment.Values {
	return segment.Format(s.Diff(now))
}
