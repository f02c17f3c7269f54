package terminal

import "time"

// Backend abstracts the raw byte source behind the key reader
type Backend interface {
	// Read blocks until input is available or timeout elapses.
	// A negative timeout blocks indefinitely. On timeout it returns (nil, nil);
	// end of input is reported as io.EOF.
	Read(timeout time.Duration) ([]byte, error)
}
