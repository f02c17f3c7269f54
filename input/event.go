package input

import "github.com/lixenwraith/ticktock/terminal"

// Kind tells which vocabulary an Event belongs to
type Kind uint8

const (
	KindKey  Kind = iota // single keystroke from a raw-mode backend
	KindLine             // complete line from a line-buffered backend
)

// Action distinguishes press from release/repeat on backends that report them
type Action uint8

const (
	ActionPress Action = iota
	ActionRelease
	ActionRepeat
)

// Event is one unit of user input delivered by a Source
type Event struct {
	Kind      Kind
	Action    Action
	Key       terminal.Key
	Rune      rune
	Modifiers terminal.Modifier
	Line      string // KindLine only, without the trailing newline
}

// KeyEvent wraps a decoded terminal key press
func KeyEvent(ev terminal.Event) Event {
	return Event{
		Kind:      KindKey,
		Key:       ev.Key,
		Rune:      ev.Rune,
		Modifiers: ev.Modifiers,
	}
}

// LineEvent wraps a line of text
func LineEvent(line string) Event {
	return Event{Kind: KindLine, Line: line}
}
