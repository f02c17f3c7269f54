package terminal

// Decoder turns a raw stdin byte stream into key events.
// Incomplete escape or UTF-8 sequences stay buffered until more bytes arrive
// or Flush is called after the escape timeout.
type Decoder struct {
	// Persistent buffer for stream assembly, not fixed size to avoid corrupting partial UTF-8 at boundary
	buf []byte
}

// NewDecoder creates a decoder with a small preallocated buffer
func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, 0, 256)}
}

// Pending reports whether an incomplete sequence is buffered
func (d *Decoder) Pending() bool {
	return len(d.buf) > 0
}

// Feed appends data and returns every complete event it contains
func (d *Decoder) Feed(data []byte) []Event {
	d.buf = append(d.buf, data...)

	var events []Event
	consumed := parseInput(d.buf, &events)

	// Compact buffer
	if consumed > 0 {
		if consumed >= len(d.buf) {
			d.buf = d.buf[:0]
		} else {
			copy(d.buf, d.buf[consumed:])
			d.buf = d.buf[:len(d.buf)-consumed]
		}
	}
	return events
}

// Flush resolves whatever is buffered once no more bytes are expected soon.
// A lone ESC becomes KeyEscape; bytes following an unterminated ESC are decoded as plain input.
func (d *Decoder) Flush() []Event {
	if len(d.buf) == 0 {
		return nil
	}

	var events []Event
	rest := d.buf
	if rest[0] == 0x1b {
		events = append(events, Event{Key: KeyEscape})
		rest = rest[1:]
	}
	for len(rest) > 0 {
		n := parseInput(rest, &events)
		if n == 0 {
			// Truncated UTF-8 or another dangling ESC, drop one byte
			if rest[0] == 0x1b {
				events = append(events, Event{Key: KeyEscape})
			}
			n = 1
		}
		rest = rest[n:]
	}
	d.buf = d.buf[:0]
	return events
}

// parseInput parses raw bytes into events and returns bytes consumed (stop on incomplete sequence)
func parseInput(data []byte, out *[]Event) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b == ' ' {
			*out = append(*out, Event{Key: KeySpace, Rune: ' '})
			i++
			continue
		}
		if b > 0x20 && b < 0x7f {
			*out = append(*out, Event{Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return i // Wait for more data
			}

			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				// Incomplete sequence, wait for more data
				return i
			}

			// Only emit if not a swallowed unknown sequence
			if ev.Key != KeyNone {
				*out = append(*out, ev)
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			if ev := parseControl(b); ev.Key != KeyNone {
				*out = append(*out, ev)
			}
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			*out = append(*out, Event{Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		seqLen := utf8SeqLen(b)
		if seqLen == 0 {
			// Invalid start byte, skip
			i++
			continue
		}
		if i+seqLen > n {
			// Incomplete UTF-8, wait for more data
			return i
		}

		rn, size := decodeRune(data[i:])
		*out = append(*out, Event{Key: KeyRune, Rune: rn})
		i += size
	}
	return i
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	if b < 0x80 {
		return 1
	}
	if b&0xe0 == 0xc0 {
		return 2
	}
	if b&0xf0 == 0xe0 {
		return 3
	}
	if b&0xf8 == 0xf0 {
		return 4
	}
	return 0 // Invalid
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{} // Incomplete, wait for more
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, Event{Key: KeyEscape, Modifiers: ModAlt}
	}

	if data[1] == '[' {
		return parseCSI(data)
	}
	if data[1] == 'O' {
		return parseSS3(data)
	}

	// Alt+Control character (ESC + 0x00-0x1F)
	if data[1] < 0x20 {
		ev := parseControl(data[1])
		ev.Modifiers |= ModAlt
		return 2, ev
	}

	// Alt+printable
	if data[1] >= 0x20 && data[1] < 0x7f {
		return 2, Event{Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	// ESC followed by non-ASCII: plain Escape, leave the rest for the next pass
	return 1, Event{Key: KeyEscape}
}

// parseCSI parses CSI sequence without allocation
func parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}

	end := 2
	maxScan := len(data)
	if maxScan > 16 {
		maxScan = 16
	}

	// vt style function keys: ESC [ [ A
	if data[2] == '[' {
		if len(data) < 4 {
			return 0, Event{}
		}
		return 4, Event{Key: KeyNone}
	}

	for end < maxScan {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			end++
			break
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, swallow what was scanned
			return end, Event{Key: KeyNone}
		}
		end++
	}

	// Check last byte is valid terminator
	lastByte := data[end-1]
	if !((lastByte >= 'A' && lastByte <= 'Z') || (lastByte >= 'a' && lastByte <= 'z') || lastByte == '~') {
		if end >= 16 {
			// Overlong garbage, swallow
			return end, Event{Key: KeyNone}
		}
		return 0, Event{} // Incomplete, no terminator found
	}

	// Unknown but valid CSI syntax resolves to KeyNone and is consumed
	key, mod := lookupCSI(data[2:end])
	return end, Event{Key: key, Modifiers: mod}
}

// parseSS3 parses SS3 sequence without allocation, returns length even for unknown sequences
func parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	// Unknown SS3 is consumed as KeyNone to prevent garbage
	return 3, Event{Key: lookupSS3(data[2])}
}

// parseControl maps control characters to keys
func parseControl(b byte) Event {
	switch b {
	case 0x03:
		return Event{Key: KeyCtrlC}
	case 0x08: // Ctrl+H or Backspace
		return Event{Key: KeyBackspace}
	case 0x09:
		return Event{Key: KeyTab}
	case 0x0a, 0x0d: // LF, CR
		return Event{Key: KeyEnter}
	case 0x1b:
		return Event{Key: KeyEscape}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Key: KeyCtrl, Rune: rune('a' + b - 1)}
	}
	// Ctrl+Space and Ctrl+punctuation are swallowed
	return Event{Key: KeyNone}
}

// decodeRune decodes the first UTF-8 rune from data
func decodeRune(data []byte) (rune, int) {
	if len(data) == 0 {
		return 0, 0
	}

	b := data[0]
	if b < 0x80 {
		return rune(b), 1
	}

	var size int
	var min rune
	var r rune

	switch {
	case b&0xe0 == 0xc0:
		size = 2
		min = 0x80
		r = rune(b & 0x1f)
	case b&0xf0 == 0xe0:
		size = 3
		min = 0x800
		r = rune(b & 0x0f)
	case b&0xf8 == 0xf0:
		size = 4
		min = 0x10000
		r = rune(b & 0x07)
	default:
		return 0xFFFD, 1 // Invalid, return replacement char
	}

	if len(data) < size {
		return 0xFFFD, 1
	}

	for i := 1; i < size; i++ {
		if data[i]&0xc0 != 0x80 {
			return 0xFFFD, 1
		}
		r = r<<6 | rune(data[i]&0x3f)
	}

	if r < min {
		return 0xFFFD, 1 // Overlong encoding
	}

	return r, size
}
