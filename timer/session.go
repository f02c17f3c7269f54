package timer

import (
	"math"
	"time"
)

// Session is the mutable timer state owned by a single Loop.
// For a countdown, accumulated is the time remaining; for a stopwatch, the time banked.
type Session struct {
	mode          Mode
	accumulated   time.Duration
	intervalStart time.Time // meaningful only while Running
	countdown     bool
	target        time.Duration
}

// NewStopwatch starts a count-up session at zero, Running from now
func NewStopwatch(now time.Time) *Session {
	return &Session{
		mode:          Running,
		intervalStart: now,
	}
}

// NewCountdown starts a count-down session from target, Running from now.
// A negative target is treated as zero.
func NewCountdown(target time.Duration, now time.Time) *Session {
	target = max(target, 0)
	return &Session{
		mode:          Running,
		accumulated:   target,
		intervalStart: now,
		countdown:     true,
		target:        target,
	}
}

// Mode returns the current run state
func (s *Session) Mode() Mode { return s.mode }

// Accumulated returns the banked duration (remaining, for a countdown)
func (s *Session) Accumulated() time.Duration { return s.accumulated }

// Countdown reports whether the session counts down
func (s *Session) Countdown() bool { return s.countdown }

// Target returns the countdown start value, zero for a stopwatch
func (s *Session) Target() time.Duration { return s.target }

// Kind names the session type for logs
func (s *Session) Kind() string {
	if s.countdown {
		return "countdown"
	}
	return "stopwatch"
}

// Live returns the duration to display at now without mutating the session
func (s *Session) Live(now time.Time) (time.Duration, error) {
	if s.mode == Stopped {
		return s.accumulated, nil
	}
	return s.advance(now)
}

// Pause banks the running interval and stops the session.
// Pausing a stopped session is a no-op. On overflow the session is unchanged.
func (s *Session) Pause(now time.Time) (time.Duration, error) {
	if s.mode == Stopped {
		return s.accumulated, nil
	}
	d, err := s.advance(now)
	if err != nil {
		return s.accumulated, err
	}
	s.accumulated = d
	s.mode = Stopped
	return d, nil
}

// Resume re-anchors the running interval at now.
// Resuming a running session is a no-op and keeps the original anchor.
func (s *Session) Resume(now time.Time) {
	if s.mode == Running {
		return
	}
	s.intervalStart = now
	s.mode = Running
}

// Toggle flips between Running and Stopped and returns the new mode
func (s *Session) Toggle(now time.Time) (Mode, error) {
	if s.mode == Running {
		if _, err := s.Pause(now); err != nil {
			return s.mode, err
		}
		return Stopped, nil
	}
	s.Resume(now)
	return Running, nil
}

// Expired reports whether d ends a countdown
func (s *Session) Expired(d time.Duration) bool {
	return s.countdown && d == 0
}

// advance applies the running interval to accumulated: checked add for a
// stopwatch, subtraction clamped at zero for a countdown
func (s *Session) advance(now time.Time) (time.Duration, error) {
	elapsed := max(now.Sub(s.intervalStart), 0)

	if s.countdown {
		if elapsed >= s.accumulated {
			return 0, nil
		}
		return s.accumulated - elapsed, nil
	}

	if elapsed > math.MaxInt64-s.accumulated {
		return s.accumulated, &OverflowError{Accumulated: s.accumulated, Elapsed: elapsed}
	}
	return s.accumulated + elapsed, nil
}
