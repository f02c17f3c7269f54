package input

// Intent is the semantic action an Event requests from the timer
type Intent uint8

const (
	IntentNone   Intent = iota
	IntentToggle        // Running <-> Stopped
	IntentQuit          // Leave the loop normally
)

var intentNames = [...]string{
	IntentNone:   "none",
	IntentToggle: "toggle",
	IntentQuit:   "quit",
}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}
