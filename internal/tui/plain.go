package tui

import (
	"io"
	"strings"

	"github.com/fakeyudi/ticker/internal/segment"
)

// PlainTarget writes one DD:HH:MM:SS line per tick, for pipes and terminals
// where the full-screen UI is not wanted. Like the controller feeding it, a
// PlainTarget is used from the host's event goroutine only.
type PlainTarget struct {
	w     io.Writer
	parts []string
	err   error
}

// NewPlainTarget returns a render target writing to w.
func NewPlainTarget(w io.Writer) *PlainTarget {
	return &PlainTarget{w: w}
}

func (p *PlainTarget) SetSegment(_ segment.Name, text string) {
	p.parts = append(p.parts, text)
}

// Flush writes the segments set since the previous Flush. The first write
// error is kept and reported by Err; later lines are dropped.
func (p *PlainTarget) Flush() {
	line := strings.Join(p.parts, ":") + "\n"
	p.parts = p.parts[:0]
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, line)
}

// Err returns the first write error, if any.
func (p *PlainTarget) Err() error {
	return p.err
}
