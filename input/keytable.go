package input

import "github.com/lixenwraith/ticktock/terminal"

// KeyTable maps events to intents for both vocabularies
type KeyTable struct {
	// Special keys (Enter, Esc, Ctrl+*); matched regardless of modifiers
	SpecialKeys map[terminal.Key]Intent

	// Printable runes; matched only without modifiers
	Runes map[rune]Intent

	// Whole lines in line mode, newline already stripped
	Lines map[string]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[terminal.Key]Intent{
			terminal.KeySpace:  IntentToggle,
			terminal.KeyEscape: IntentQuit,
			terminal.KeyEnter:  IntentQuit,
			// Raw mode swallows SIGINT, so Ctrl+C must be honoured here
			terminal.KeyCtrlC: IntentQuit,
		},
		Runes: map[rune]Intent{
			' ': IntentToggle,
			'k': IntentToggle,
			'q': IntentQuit,
		},
		Lines: map[string]Intent{
			"":  IntentToggle,
			"q": IntentQuit,
		},
	}
}

var defaultKeyTable = DefaultKeyTable()

// Classify resolves ev against the default bindings
func Classify(ev Event) Intent {
	return defaultKeyTable.Classify(ev)
}

// Classify resolves ev to an Intent; anything unbound is IntentNone
func (kt *KeyTable) Classify(ev Event) Intent {
	if ev.Action != ActionPress {
		return IntentNone
	}

	if ev.Kind == KindLine {
		return kt.Lines[ev.Line]
	}

	if ev.Key == terminal.KeyRune {
		if ev.Modifiers != terminal.ModNone {
			return IntentNone
		}
		return kt.Runes[ev.Rune]
	}
	return kt.SpecialKeys[ev.Key]
}

// BindRunes binds every character of keys to intent, replacing existing bindings
func (kt *KeyTable) BindRunes(keys string, intent Intent) {
	for _, r := range keys {
		kt.Runes[r] = intent
	}
}
