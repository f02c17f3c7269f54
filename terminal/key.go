package terminal

// Key identifies a decoded key press
type Key uint8

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyCtrlC
	KeyCtrl // Any other Ctrl+letter, Event.Rune holds the lowercase letter

	// Cursor keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = [...]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeySpace:     "space",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyCtrlC:     "ctrl_c",
	KeyCtrl:      "ctrl",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// Modifier flags, bit-compatible with the xterm modifier parameter minus one
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2

	modMask = ModShift | ModAlt | ModCtrl
)

// cursorKey maps the final byte of CSI and SS3 cursor sequences
func cursorKey(b byte) Key {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return KeyNone
}

// lookupCSI resolves the bytes after ESC [ up to and including the final byte.
// Only the handful of sequences a timer can act on are recognised.
func lookupCSI(seq []byte) (Key, Modifier) {
	final := seq[len(seq)-1]
	params := seq[:len(seq)-1]

	switch final {
	case 'A', 'B', 'C', 'D':
		// ESC [ A, or xterm style ESC [ 1 ; mod A
		return cursorKey(final), xtermModifier(params)
	case 'Z':
		return KeyTab, ModShift
	case '~':
		if len(params) > 0 && params[0] == '3' && (len(params) == 1 || params[1] == ';') {
			return KeyDelete, xtermModifier(params)
		}
	}
	return KeyNone, ModNone
}

// lookupSS3 resolves the single byte after ESC O
func lookupSS3(b byte) Key {
	if b == 'M' { // Keypad Enter
		return KeyEnter
	}
	return cursorKey(b)
}

// xtermModifier reads the parameter after ';' as 1 + modifier bits
func xtermModifier(params []byte) Modifier {
	for i, b := range params {
		if b != ';' {
			continue
		}
		var n int
		for _, d := range params[i+1:] {
			if d < '0' || d > '9' {
				return ModNone
			}
			n = n*10 + int(d-'0')
		}
		if n < 2 {
			return ModNone
		}
		return Modifier(n-1) & modMask
	}
	return ModNone
}
