package render

import (
	"bufio"
	"io"
	"time"

	"github.com/lixenwraith/ticktock/hms"
	"github.com/lixenwraith/ticktock/terminal"
	"github.com/lixenwraith/ticktock/timer"
)

// Option configures a LineRenderer
type Option func(*LineRenderer)

// WithHint sets the line printed once above the duration; empty disables it
func WithHint(hint string) Option {
	return func(r *LineRenderer) { r.hint = hint }
}

// WithColor forces colour on or off. Without it fatih/color's terminal
// detection (and NO_COLOR) decide.
func WithColor(enabled bool) Option {
	return func(r *LineRenderer) { r.color = &enabled }
}

// LineRenderer rewrites a single terminal line per Render
type LineRenderer struct {
	w       *bufio.Writer
	hint    string
	color   *bool
	palette palette
	buf     []byte

	started bool
	closed  bool
}

// NewLineRenderer renders to w
func NewLineRenderer(w io.Writer, opts ...Option) *LineRenderer {
	r := &LineRenderer{
		w:    bufio.NewWriterSize(w, 256),
		hint: HintRaw,
		buf:  make([]byte, 0, 32),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.palette = newPalette(r.color)
	return r
}

// Render erases the current line and draws status and duration.
// The cursor is left on the same line; the buffer is flushed before return.
func (r *LineRenderer) Render(d time.Duration, mode timer.Mode) error {
	if !r.started {
		r.started = true
		terminal.SetCursorVisible(r.w, false)
		if r.hint != "" {
			r.w.WriteString(r.hint)
			terminal.NewLine(r.w)
		}
	}

	terminal.EraseLine(r.w)
	r.w.WriteString(r.palette.status(mode))
	r.w.WriteByte(' ')

	r.buf = hms.FromDuration(d).AppendFormat(r.buf[:0])
	r.w.Write(r.buf)

	return r.w.Flush()
}

// Close ends the duration line and restores the cursor. Idempotent.
func (r *LineRenderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if r.started {
		terminal.NewLine(r.w)
		terminal.SetCursorVisible(r.w, true)
		terminal.ResetAttributes(r.w)
	}
	return r.w.Flush()
}
