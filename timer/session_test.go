package timer

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestStopwatchPauseResume(t *testing.T) {
	s := NewStopwatch(at(0))
	assert.Equal(t, Running, s.Mode())
	assert.False(t, s.Countdown())
	assert.Equal(t, "stopwatch", s.Kind())

	d, err := s.Live(at(250))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
	assert.Equal(t, time.Duration(0), s.Accumulated(), "Live must not mutate")

	d, err = s.Pause(at(300))
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, d)
	assert.Equal(t, Stopped, s.Mode())

	// Frozen while stopped
	d, err = s.Live(at(5000))
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, d)

	s.Resume(at(1000))
	d, err = s.Live(at(1200))
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d, "stopped interval must not be counted")
}

func TestResumeIdempotent(t *testing.T) {
	s := NewStopwatch(at(0))
	_, err := s.Pause(at(100))
	require.NoError(t, err)

	s.Resume(at(200))
	s.Resume(at(700)) // no-op, keeps the 200ms anchor
	assert.Equal(t, 100*time.Millisecond, s.Accumulated())

	d, err := s.Live(at(800))
	require.NoError(t, err)
	assert.Equal(t, 700*time.Millisecond, d)
}

func TestPauseIdempotent(t *testing.T) {
	s := NewStopwatch(at(0))
	_, err := s.Pause(at(100))
	require.NoError(t, err)

	d, err := s.Pause(at(900))
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, d)
	assert.Equal(t, 100*time.Millisecond, s.Accumulated())
}

func TestToggle(t *testing.T) {
	s := NewStopwatch(at(0))

	m, err := s.Toggle(at(100))
	require.NoError(t, err)
	assert.Equal(t, Stopped, m)

	m, err = s.Toggle(at(400))
	require.NoError(t, err)
	assert.Equal(t, Running, m)

	m, err = s.Toggle(at(600))
	require.NoError(t, err)
	assert.Equal(t, Stopped, m)
	assert.Equal(t, 300*time.Millisecond, s.Accumulated())
}

func TestCountdownClamp(t *testing.T) {
	s := NewCountdown(time.Second, at(0))
	assert.True(t, s.Countdown())
	assert.Equal(t, "countdown", s.Kind())
	assert.Equal(t, time.Second, s.Target())

	d, err := s.Live(at(400))
	require.NoError(t, err)
	assert.Equal(t, 600*time.Millisecond, d)
	assert.False(t, s.Expired(d))

	d, err = s.Live(at(5000))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)
	assert.True(t, s.Expired(d))

	d, err = s.Pause(at(1500))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)
	assert.Equal(t, time.Duration(0), s.Accumulated())
}

func TestCountdownNegativeTarget(t *testing.T) {
	s := NewCountdown(-time.Second, at(0))
	assert.Equal(t, time.Duration(0), s.Accumulated())
}

func TestExpiredOnlyForCountdown(t *testing.T) {
	assert.False(t, NewStopwatch(at(0)).Expired(0))
	assert.True(t, NewCountdown(time.Second, at(0)).Expired(0))
}

func TestClockBackwards(t *testing.T) {
	s := NewStopwatch(at(1000))
	d, err := s.Live(at(500))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)
}

func TestStopwatchOverflow(t *testing.T) {
	s := NewStopwatch(at(0))
	s.accumulated = math.MaxInt64 - time.Second

	_, err := s.Live(at(2000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverflow))

	var oe *OverflowError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, 2*time.Second, oe.Elapsed)
	assert.Equal(t, time.Duration(math.MaxInt64-time.Second), oe.Accumulated)

	_, err = s.Pause(at(2000))
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, Running, s.Mode(), "failed pause leaves session unchanged")
	assert.Equal(t, time.Duration(math.MaxInt64-time.Second), s.Accumulated())

	// Exactly at the limit is fine
	d, err := s.Live(at(1000))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(math.MaxInt64), d)
}

func TestModeOutcomeString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
	assert.Equal(t, "finished", FinishedNormally.String())
	assert.Equal(t, "countdown_zero", FinishedCountdownZero.String())
	assert.Equal(t, "aborted", Aborted.String())
}
