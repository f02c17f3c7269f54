package input

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/lixenwraith/ticktock/terminal"
)

// LineReader is the subset of *readline.Instance used by LineSource
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// LineSource reads newline-terminated lines, for terminals left in cooked mode
type LineSource struct {
	reader LineReader
}

// NewLineSource opens a readline instance on in/out.
// The prompt is empty and the edit line is cleared after each submit so typed
// text does not scroll the display. Close unblocks a pending read.
func NewLineSource(in io.Reader, out io.Writer) (*LineSource, error) {
	cfg := &readline.Config{
		Prompt:                 "",
		Stdin:                  readline.NewCancelableStdin(in),
		Stdout:                 out,
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
		UniqueEditLine:         true,
	}
	// readline switches modes on the process stdin only; any other reader is a plain stream
	if f, ok := in.(*os.File); !ok || f != os.Stdin {
		cfg.FuncIsTerminal = func() bool { return false }
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return &LineSource{reader: rl}, nil
}

// NewLineSourceFrom wraps an existing LineReader
func NewLineSourceFrom(r LineReader) *LineSource {
	return &LineSource{reader: r}
}

// ReadEvent returns the next line. An interrupt (Ctrl+C) is reported as a
// Ctrl+C key press so it classifies as quit; end of input is io.EOF.
func (s *LineSource) ReadEvent() (Event, error) {
	line, err := s.reader.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return Event{Kind: KindKey, Key: terminal.KeyCtrlC}, nil
		}
		return Event{}, err
	}
	return LineEvent(strings.TrimRight(line, "\r\n")), nil
}

// Close releases the underlying reader
func (s *LineSource) Close() error {
	return s.reader.Close()
}
