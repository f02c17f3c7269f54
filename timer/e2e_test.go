package timer

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ticktock/input"
)

// pipeSource feeds lines written by the test to a real Listener
type pipeSource struct {
	lines chan string
}

func (p *pipeSource) ReadEvent() (input.Event, error) {
	l, ok := <-p.lines
	if !ok {
		return input.Event{}, io.EOF
	}
	return input.LineEvent(l), nil
}

func runAsync(l *Loop) <-chan Result {
	done := make(chan Result, 1)
	go func() { done <- l.Run(context.Background()) }()
	return done
}

func TestEndToEndStopwatch(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time test")
	}

	src := &pipeSource{lines: make(chan string)}
	rend := &recordingRenderer{}
	raw := &fakeRaw{}
	loop := NewLoop(NewStopwatch(time.Now()), input.NewListener(src), rend, WithRawMode(raw))

	done := runAsync(loop)

	time.Sleep(250 * time.Millisecond)
	src.lines <- "" // stop

	// Let the stop register and a few stopped ticks pass
	time.Sleep(350 * time.Millisecond)
	frames := rend.snapshot()
	require.NotEmpty(t, frames)
	stopped := frames[len(frames)-1]
	assert.Equal(t, Stopped, stopped.mode)
	assert.GreaterOrEqual(t, stopped.d, 200*time.Millisecond)
	assert.Less(t, stopped.d, 500*time.Millisecond)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, len(frames), len(rend.snapshot()), "no renders while stopped")

	src.lines <- "q"

	select {
	case res := <-done:
		assert.Equal(t, FinishedNormally, res.Outcome)
		assert.Equal(t, stopped.d, res.Final, "duration frozen while stopped")
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit")
	}

	enabled, disabled := raw.counts()
	assert.Equal(t, 1, enabled)
	assert.Equal(t, 1, disabled)

	frames = rend.snapshot()
	for i := 1; i < len(frames); i++ {
		assert.GreaterOrEqual(t, frames[i].d, frames[i-1].d)
	}
}

func TestEndToEndCountdown(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time test")
	}

	src := &pipeSource{lines: make(chan string)}
	rend := &recordingRenderer{}
	raw := &fakeRaw{}

	start := time.Now()
	loop := NewLoop(NewCountdown(time.Second, start), input.NewListener(src), rend, WithRawMode(raw))

	var res Result
	select {
	case res = <-runAsync(loop):
	case <-time.After(3 * time.Second):
		t.Fatal("countdown did not finish")
	}
	elapsed := time.Since(start)

	assert.Equal(t, FinishedCountdownZero, res.Outcome)
	assert.GreaterOrEqual(t, elapsed, time.Second)
	// One poll period plus scheduling slack
	assert.Less(t, elapsed, time.Second+PollPeriod+150*time.Millisecond)

	frames := rend.snapshot()
	require.NotEmpty(t, frames)
	assert.Equal(t, time.Duration(0), frames[len(frames)-1].d)
	for _, f := range frames {
		assert.GreaterOrEqual(t, f.d, time.Duration(0))
		assert.LessOrEqual(t, f.d, time.Second)
	}

	_, disabled := raw.counts()
	assert.Equal(t, 1, disabled)
}

func TestEndToEndListenerFailure(t *testing.T) {
	src := &pipeSource{lines: make(chan string)}
	rend := &recordingRenderer{}
	raw := &fakeRaw{}

	listener := input.NewListener(src, input.WithFailureHook(func() { _ = raw.DisableRawMode() }))
	loop := NewLoop(NewStopwatch(time.Now()), listener, rend, WithRawMode(raw))

	done := runAsync(loop)
	close(src.lines)

	select {
	case res := <-done:
		assert.Equal(t, Aborted, res.Outcome)
		assert.ErrorIs(t, res.Err, ErrDisconnected)
		assert.ErrorIs(t, res.Err, io.EOF)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not abort")
	}

	// Listener hook plus loop exit
	_, disabled := raw.counts()
	assert.Equal(t, 2, disabled)
}
