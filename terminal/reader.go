package terminal

import "time"

// escapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const escapeTimeout = 50 * time.Millisecond

// Reader yields decoded key events from a Backend, one per call
type Reader struct {
	backend Backend
	decoder *Decoder
	pending []Event
}

// NewReader creates a reader over backend
func NewReader(backend Backend) *Reader {
	return &Reader{
		backend: backend,
		decoder: NewDecoder(),
	}
}

// ReadEvent blocks until the next key event or a read error.
// End of input is returned as io.EOF.
func (r *Reader) ReadEvent() (Event, error) {
	for {
		if len(r.pending) > 0 {
			ev := r.pending[0]
			r.pending = r.pending[1:]
			return ev, nil
		}

		timeout := time.Duration(-1)
		if r.decoder.Pending() {
			timeout = escapeTimeout
		}

		data, err := r.backend.Read(timeout)
		if err != nil {
			return Event{}, err
		}

		if len(data) == 0 {
			// Timeout with an incomplete sequence buffered
			r.pending = append(r.pending, r.decoder.Flush()...)
			continue
		}

		r.pending = append(r.pending, r.decoder.Feed(data)...)
	}
}
