// Package screen runs the timer fullscreen on a tcell screen. A Screen is
// at once the key source, the renderer and the raw-mode switch: Init and Fini
// take the place of raw mode enable and disable.
package screen

import (
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ticktock/hms"
	"github.com/lixenwraith/ticktock/input"
	"github.com/lixenwraith/ticktock/render"
	"github.com/lixenwraith/ticktock/terminal"
	"github.com/lixenwraith/ticktock/timer"
)

var (
	styleDefault = tcell.StyleDefault
	styleRunning = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStopped = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHint    = tcell.StyleDefault.Dim(true)
)

// Screen adapts a tcell.Screen to the timer loop
type Screen struct {
	screen tcell.Screen
	hint   string

	mu      sync.Mutex
	active  bool
	stopped bool
	buf     []byte
}

// New wraps an uninitialised tcell screen
func New(s tcell.Screen, hint string) *Screen {
	return &Screen{
		screen: s,
		hint:   hint,
		buf:    make([]byte, 0, 32),
	}
}

// Open creates a screen on the controlling terminal
func Open(hint string) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(s, hint), nil
}

// EnableRawMode initialises the screen. Idempotent; a finalised screen cannot be reopened.
func (s *Screen) EnableRawMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active || s.stopped {
		return nil
	}
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.HideCursor()
	s.screen.Clear()
	s.active = true
	return nil
}

// DisableRawMode finalises the screen and restores the terminal. Idempotent.
func (s *Screen) DisableRawMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}
	s.active = false
	s.stopped = true
	s.screen.Fini()
	return nil
}

// ReadEvent blocks for the next key press. Resizes are handled internally.
// After Fini it returns io.EOF.
func (s *Screen) ReadEvent() (input.Event, error) {
	for {
		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return input.Event{}, io.EOF
		case *tcell.EventKey:
			return convertKey(ev), nil
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// Render draws status and duration centred, with the hint two rows below
func (s *Screen) Render(d time.Duration, mode timer.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}

	w, h := s.screen.Size()
	s.screen.Clear()

	status := render.StatusLabel(mode)
	s.buf = append(s.buf[:0], status...)
	s.buf = append(s.buf, ' ')
	s.buf = hms.FromDuration(d).AppendFormat(s.buf)

	style := styleRunning
	if mode == timer.Stopped {
		style = styleStopped
	}

	y := h / 2
	x := centre(w, len(s.buf))
	drawText(s.screen, x, y, s.buf[:len(status)], style)
	drawText(s.screen, x+len(status), y, s.buf[len(status):], styleDefault)

	if s.hint != "" {
		drawText(s.screen, centre(w, len(s.hint)), y+2, []byte(s.hint), styleHint)
	}

	s.screen.Show()
	return nil
}

// Close is a no-op; the display is torn down by DisableRawMode
func (s *Screen) Close() error {
	return nil
}

func centre(width, n int) int {
	return max((width-n)/2, 0)
}

// drawText writes ASCII text; cells past the right edge are dropped by tcell
func drawText(s tcell.Screen, x, y int, text []byte, style tcell.Style) {
	for i, c := range text {
		s.SetContent(x+i, y, rune(c), nil, style)
	}
}

var keyMap = map[tcell.Key]terminal.Key{
	tcell.KeyEscape:    terminal.KeyEscape,
	tcell.KeyEnter:     terminal.KeyEnter,
	tcell.KeyTab:       terminal.KeyTab,
	tcell.KeyBackspace: terminal.KeyBackspace,
	tcell.KeyDelete:    terminal.KeyDelete,
	tcell.KeyUp:        terminal.KeyUp,
	tcell.KeyDown:      terminal.KeyDown,
	tcell.KeyLeft:      terminal.KeyLeft,
	tcell.KeyRight:     terminal.KeyRight,
	tcell.KeyCtrlC:     terminal.KeyCtrlC,
}

func convertKey(ev *tcell.EventKey) input.Event {
	out := input.Event{Kind: input.KindKey, Modifiers: convertModifiers(ev.Modifiers())}

	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		out.Rune = ev.Rune()
		out.Key = terminal.KeyRune
		if out.Rune == ' ' {
			out.Key = terminal.KeySpace
		}
	case k == tcell.KeyBacktab:
		out.Key = terminal.KeyTab
		out.Modifiers |= terminal.ModShift
	case k != tcell.KeyCtrlC && k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		out.Key = terminal.KeyCtrl
		out.Rune = 'a' + rune(k-tcell.KeyCtrlA)
	default:
		out.Key = keyMap[k]
	}
	return out
}

func convertModifiers(m tcell.ModMask) terminal.Modifier {
	var out terminal.Modifier
	if m&tcell.ModShift != 0 {
		out |= terminal.ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= terminal.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= terminal.ModCtrl
	}
	return out
}
