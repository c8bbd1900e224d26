// Package widget implements the ticker widget's lifecycle: a controller that
// owns at most one running session, recomputes the display value on every
// scheduler tick and pushes segment text to a render target.
package widget

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fakeyudi/ticker/internal/schedule"
	"github.com/fakeyudi/ticker/internal/segment"
)

// RenderTarget receives segment text. The controller never touches
// presentation beyond this call.
type RenderTarget interface {
	SetSegment(name segment.Name, text string)
}

// Flusher is implemented by render targets that want to know when all of a
// tick's segments have been set.
type Flusher interface {
	Flush()
}

// Lifecycle is the set of notifications a host delivers to a widget.
type Lifecycle interface {
	Mounted()
	Unmounted()
	AttributeChanged(name, oldValue, newValue string)
	Adopted()
}

// State is the controller's lifecycle state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Options tune a Controller. Zero values select the defaults.
type Options struct {
	Interval time.Duration    // tick interval, default one second
	Now      func() time.Time // wall clock, default time.Now
	Location *time.Location   // zone for targets without an offset, default time.Local
	Logger   *slog.Logger     // default slog.Default()
}

// Controller drives one widget instance. All methods must be called from the
// host's event goroutine; they are not safe for concurrent use.
type Controller struct {
	host  schedule.Host
	out   RenderTarget
	attrs *Attributes
	opts  Options
	log   *slog.Logger

	state State
	sess  *Session
}

var _ Lifecycle = (*Controller)(nil)

// NewController returns an idle controller.
func NewController(h schedule.Host, target RenderTarget, attrs *Attributes, opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if attrs == nil {
		attrs = NewAttributes(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		host:  h,
		out:   target,
		attrs: attrs,
		opts:  opts,
		log:   logger,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Session returns the live session, or nil when idle.
func (c *Controller) Session() *Session {
	if c.state != Running {
		return nil
	}
	return c.sess
}

// Attributes returns the controller's configuration surface.
func (c *Controller) Attributes() *Attributes { return c.attrs }

// Start begins a new session, replacing any running one. The previous
// session is cancelled before anything else happens, so at most one
// scheduler is ever live for this controller, including when Start is called
// from inside a tick.
func (c *Controller) Start() {
	if c.sess != nil {
		c.sess.token.Cancel()
	}

	sess := c.newSession()
	c.sess = sess
	c.state = Running
	c.log.Info("session started",
		"session", sess.ID,
		"mode", sess.Mode().String(),
		"direction", string(sess.Direction),
		"target", sess.Target)

	c.render(sess, sess.OriginTick)
	// render may have restarted or stopped the widget.
	if sess.token.Cancelled() {
		return
	}
	schedule.Start(c.host, sess.Interval, sess.OriginTick, sess.token, func(now time.Duration) {
		c.render(sess, now)
	})
}

// Stop cancels the running session. Stopping an idle controller does
// nothing.
func (c *Controller) Stop() {
	if c.state != Running {
		return
	}
	c.sess.token.Cancel()
	c.state = Idle
	c.log.Info("session stopped", "session", c.sess.ID)
}

// Mounted starts the widget.
func (c *Controller) Mounted() { c.Start() }

// Unmounted stops the widget.
func (c *Controller) Unmounted() { c.Stop() }

// AttributeChanged restarts a running widget when an observed attribute
// changes. Changes while idle take effect on the next Start.
func (c *Controller) AttributeChanged(name, oldValue, newValue string) {
	if !observed(name) || oldValue == newValue {
		return
	}
	c.log.Debug("attribute changed", "name", name, "old", oldValue, "new", newValue)
	if c.state == Running {
		c.Start()
	}
}

// Adopted restarts a running widget so its origin is taken from the new
// host context.
func (c *Controller) Adopted() {
	if c.state == Running {
		c.Start()
	}
}

// SetAttribute updates an attribute and delivers the change notification,
// like a host setting an attribute on a mounted element.
func (c *Controller) SetAttribute(name, value string) {
	if old, changed := c.attrs.Set(name, value); changed {
		c.AttributeChanged(name, old, value)
	}
}

func (c *Controller) newSession() *Session {
	sess := &Session{
		ID:         uuid.New().String(),
		OriginTick: c.host.Now(),
		OriginWall: c.opts.Now(),
		Interval:   c.opts.Interval,
		token:      schedule.NewToken(),
	}

	target, ok, err := ParseTarget(c.attrs.Get(AttrTarget), c.opts.Location)
	if err != nil {
		var te *TargetError
		if errors.As(err, &te) {
			c.log.Warn("ignoring target, running as stopwatch", "target", te.Value)
		}
	}
	if ok {
		sess.Target = target
	}

	dir, ok := ParseDirection(c.attrs.Get(AttrDirection))
	if !ok {
		c.log.Warn("ignoring direction", "direction", c.attrs.Get(AttrDirection))
	}
	sess.Direction = dir

	names, err := segment.ParseSelector(c.attrs.Get(AttrSegments))
	if err != nil {
		c.log.Warn("ignoring segment selector", "error", err)
		names = append([]segment.Name(nil), segment.All...)
	}
	sess.Segments = names

	return sess
}

// render pushes the session's value at the tick's nominal instant, most
// significant segment first. An overdue value carries its sign on the first
// rendered segment.
func (c *Controller) render(sess *Session, now time.Duration) {
	nominal := schedule.Nominal(now, sess.OriginTick, sess.Interval)
	v := sess.Values(nominal)
	for i, n := range sess.Segments {
		text := v.Text(n)
		if i == 0 && v.Negative {
			text = "-" + text
		}
		c.out.SetSegment(n, text)
	}
	if f, ok := c.out.(Flusher); ok {
		f.Flush()
	}
}
