package input

import (
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// Status is the outcome of a non-blocking Poll
type Status uint8

const (
	StatusReady        Status = iota // an event was returned
	StatusEmpty                      // nothing queued right now
	StatusDisconnected               // producer stopped; no more events ever
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// ListenerOption configures a Listener
type ListenerOption func(*Listener)

// WithFailureHook runs fn once from the producer goroutine when the source fails,
// before Poll starts reporting disconnected. Used to restore the terminal as early as possible.
func WithFailureHook(fn func()) ListenerOption {
	return func(l *Listener) { l.onFailure = fn }
}

// WithLogger sets the listener logger
func WithLogger(logger *zap.Logger) ListenerOption {
	return func(l *Listener) { l.logger = logger }
}

// Listener moves events from a blocking Source onto an unbounded queue the
// timer loop polls. The producer never waits on the consumer.
// The producer goroutine is never cancelled; it is abandoned when the process exits.
type Listener struct {
	source    Source
	onFailure func()
	logger    *zap.Logger

	startOnce sync.Once
	mu        sync.Mutex
	queue     []Event
	done      bool
	err       error
}

// NewListener creates a listener over source; call Start to begin reading
func NewListener(source Source, opts ...ListenerOption) *Listener {
	l := &Listener{
		source: source,
		queue:  make([]Event, 0, 16),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the producer goroutine. Subsequent calls are no-ops.
func (l *Listener) Start() {
	l.startOnce.Do(func() {
		go l.run()
	})
}

// Poll returns the oldest queued event without blocking.
// Disconnected is reported only after every queued event was returned.
func (l *Listener) Poll() (Event, Status) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) > 0 {
		ev := l.queue[0]
		l.queue[0] = Event{}
		l.queue = l.queue[1:]
		return ev, StatusReady
	}
	if l.done {
		return Event{}, StatusDisconnected
	}
	return Event{}, StatusEmpty
}

// Err returns the error that stopped the producer, nil while it is running
func (l *Listener) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Listener) run() {
	defer func() {
		l.mu.Lock()
		l.done = true
		l.mu.Unlock()
	}()
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("input listener panic",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			l.fail(fmt.Errorf("input listener panic: %v", r))
		}
	}()

	for {
		ev, err := l.source.ReadEvent()
		if err != nil {
			l.logger.Debug("input source stopped", zap.Error(err))
			l.fail(err)
			return
		}
		if ev.Action != ActionPress {
			continue
		}
		l.mu.Lock()
		l.queue = append(l.queue, ev)
		l.mu.Unlock()
	}
}

func (l *Listener) fail(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()

	if l.onFailure != nil {
		l.onFailure()
	}
}
