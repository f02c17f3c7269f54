package timer

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrOverflow is matched by *OverflowError
	ErrOverflow = errors.New("time overflow")

	// ErrDisconnected reports that the input listener stopped producing events
	ErrDisconnected = errors.New("channel disconnected")

	// ErrInterrupted reports that the loop context was cancelled
	ErrInterrupted = errors.New("interrupted")
)

// OverflowError is returned when stopwatch accumulation exceeds time.Duration
type OverflowError struct {
	Accumulated time.Duration
	Elapsed     time.Duration
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("time overflow: %v + %v", e.Accumulated, e.Elapsed)
}

func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

// RenderError wraps a display write failure
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "render failed: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// RawModeError wraps a failure to enter or leave raw terminal mode
type RawModeError struct {
	Op  string // "enable" or "disable"
	Err error
}

func (e *RawModeError) Error() string {
	return fmt.Sprintf("%s raw mode: %v", e.Op, e.Err)
}

func (e *RawModeError) Unwrap() error {
	return e.Err
}

// disconnected wraps the listener failure cause, if any, under ErrDisconnected
func disconnected(cause error) error {
	if cause == nil {
		return ErrDisconnected
	}
	return fmt.Errorf("%w: %w", ErrDisconnected, cause)
}
