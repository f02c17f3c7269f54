package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	// CSI sequences
	csiSGR0   = []byte("\x1b[0m")
	csiEraseL = []byte("\x1b[2K")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	crlf = []byte("\r\n")
)

// EraseLine returns the cursor to column one and clears the whole line
func EraseLine(w *bufio.Writer) {
	w.WriteByte('\r')
	w.Write(csiEraseL)
}

// NewLine writes CR LF so output stays aligned when OPOST is disabled by raw mode
func NewLine(w *bufio.Writer) {
	w.Write(crlf)
}

// SetCursorVisible shows/hides cursor
func SetCursorVisible(w *bufio.Writer, visible bool) {
	if visible {
		w.Write(csiCursorShow)
	} else {
		w.Write(csiCursorHide)
	}
}

// ResetAttributes clears colour and style state
func ResetAttributes(w *bufio.Writer) {
	w.Write(csiSGR0)
}
