package timer

import "time"

// Clock supplies wall-clock readings and the poll sleep
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock returns the system clock. Readings carry the monotonic component,
// so intervals are immune to wall-clock adjustments.
func RealClock() Clock {
	return realClock{}
}
