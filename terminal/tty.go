package terminal

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when raw mode is requested on a non-tty
var ErrNotTerminal = errors.New("not a terminal")

// TTY toggles raw mode on a file descriptor and remembers the state to restore.
// EnableRawMode and DisableRawMode are idempotent and safe for concurrent use.
type TTY struct {
	file *os.File
	fd   int

	mu    sync.Mutex
	saved *term.State
}

// NewTTY wraps f, normally os.Stdin
func NewTTY(f *os.File) *TTY {
	return &TTY{file: f, fd: int(f.Fd())}
}

// IsTerminal reports whether the wrapped file is a terminal
func (t *TTY) IsTerminal() bool {
	return term.IsTerminal(t.fd)
}

// EnableRawMode disables line buffering and echo
func (t *TTY) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.saved != nil {
		return nil
	}
	if !term.IsTerminal(t.fd) {
		return fmt.Errorf("%s: %w", t.file.Name(), ErrNotTerminal)
	}

	old, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("make raw: %w", err)
	}
	t.saved = old
	return nil
}

// DisableRawMode restores the attributes captured by EnableRawMode
func (t *TTY) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.saved == nil {
		return nil
	}
	err := term.Restore(t.fd, t.saved)
	t.saved = nil
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

// Raw reports whether raw mode is currently enabled through t
func (t *TTY) Raw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saved != nil
}
