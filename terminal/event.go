package terminal

// Event represents one decoded key press
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}
