package input

import "github.com/lixenwraith/ticktock/terminal"

// Source yields user input one event at a time.
// ReadEvent blocks; any error ends the stream.
type Source interface {
	ReadEvent() (Event, error)
}

// RawSource reads keystrokes from a raw-mode terminal backend
type RawSource struct {
	reader *terminal.Reader
}

// NewRawSource decodes key presses from backend
func NewRawSource(backend terminal.Backend) *RawSource {
	return &RawSource{reader: terminal.NewReader(backend)}
}

// ReadEvent returns the next key press
func (s *RawSource) ReadEvent() (Event, error) {
	ev, err := s.reader.ReadEvent()
	if err != nil {
		return Event{}, err
	}
	return KeyEvent(ev), nil
}
