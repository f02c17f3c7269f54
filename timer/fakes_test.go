package timer

import (
	"errors"
	"sync"
	"time"

	"github.com/lixenwraith/ticktock/input"
)

// fakeClock advances only when the loop sleeps
type fakeClock struct {
	now    time.Time
	sleeps int
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.sleeps++
}

// poll is one scripted Poll result
type poll struct {
	ev     input.Event
	status input.Status
}

func empty() poll             { return poll{status: input.StatusEmpty} }
func line(s string) poll      { return poll{ev: input.LineEvent(s), status: input.StatusReady} }
func key(ev input.Event) poll { return poll{ev: ev, status: input.StatusReady} }
func gone() poll              { return poll{status: input.StatusDisconnected} }

// idle returns n empty polls
func idle(n int) []poll {
	ps := make([]poll, n)
	for i := range ps {
		ps[i] = empty()
	}
	return ps
}

func script(ps ...[]poll) []poll {
	var out []poll
	for _, p := range ps {
		out = append(out, p...)
	}
	return out
}

// scriptedEvents replays one poll per iteration, then reports empty
type scriptedEvents struct {
	polls   []poll
	err     error
	started int
}

func (e *scriptedEvents) Start() { e.started++ }

func (e *scriptedEvents) Poll() (input.Event, input.Status) {
	if len(e.polls) == 0 {
		return input.Event{}, input.StatusEmpty
	}
	p := e.polls[0]
	e.polls = e.polls[1:]
	return p.ev, p.status
}

func (e *scriptedEvents) Err() error { return e.err }

type frame struct {
	d    time.Duration
	mode Mode
}

// recordingRenderer captures frames; safe for concurrent inspection
type recordingRenderer struct {
	mu      sync.Mutex
	frames  []frame
	failAt  int // 1-based frame index that fails, 0 never
	panicAt int
	closed  int
}

var errBrokenPipe = errors.New("broken pipe")

func (r *recordingRenderer) Render(d time.Duration, mode Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.frames) + 1
	if r.panicAt == n {
		panic("render panic")
	}
	if r.failAt == n {
		return errBrokenPipe
	}
	r.frames = append(r.frames, frame{d, mode})
	return nil
}

func (r *recordingRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func (r *recordingRenderer) snapshot() []frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]frame(nil), r.frames...)
}

type fakeRaw struct {
	mu         sync.Mutex
	enableErr  error
	disableErr error
	enabled    int
	disabled   int
}

func (r *fakeRaw) EnableRawMode() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled++
	return r.enableErr
}

func (r *fakeRaw) DisableRawMode() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled++
	return r.disableErr
}

func (r *fakeRaw) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled, r.disabled
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
