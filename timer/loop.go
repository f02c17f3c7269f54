package timer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/ticktock/input"
)

// PollPeriod is the fixed sleep between loop iterations and the worst-case
// input-to-redraw latency
const PollPeriod = 100 * time.Millisecond

// Renderer draws the current duration in place
type Renderer interface {
	Render(d time.Duration, mode Mode) error
	// Close finishes the display so subsequent output starts on a fresh line
	Close() error
}

// RawMode switches the terminal in and out of per-keystroke input.
// Both operations must be idempotent.
type RawMode interface {
	EnableRawMode() error
	DisableRawMode() error
}

// Events is the consumer side of the input listener
type Events interface {
	Start()
	Poll() (input.Event, input.Status)
	Err() error
}

// Result describes how a Loop run ended
type Result struct {
	Outcome Outcome
	Final   time.Duration // last displayed duration
	Err     error         // cause when Outcome is Aborted

	// RestoreErr is set when raw mode could not be disabled on exit.
	// It never replaces Outcome or Err.
	RestoreErr error
}

// Option configures a Loop
type Option func(*Loop)

// WithRawMode sets the raw-mode switch enabled before the listener starts
func WithRawMode(raw RawMode) Option {
	return func(l *Loop) { l.raw = raw }
}

// WithClock replaces the system clock
func WithClock(clock Clock) Option {
	return func(l *Loop) { l.clock = clock }
}

// WithKeyTable replaces the default key bindings
func WithKeyTable(kt *input.KeyTable) Option {
	return func(l *Loop) { l.keys = kt }
}

// WithLogger sets the loop logger
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithPeriod overrides PollPeriod
func WithPeriod(d time.Duration) Option {
	return func(l *Loop) { l.period = d }
}

// Loop drives a Session from input events and renders it on a fixed cadence
type Loop struct {
	session  *Session
	events   Events
	renderer Renderer
	raw      RawMode
	clock    Clock
	keys     *input.KeyTable
	logger   *zap.Logger
	period   time.Duration

	last time.Duration // last rendered duration
}

// NewLoop creates a loop that owns session for the duration of Run
func NewLoop(session *Session, events Events, renderer Renderer, opts ...Option) *Loop {
	l := &Loop{
		session:  session,
		events:   events,
		renderer: renderer,
		clock:    RealClock(),
		keys:     input.DefaultKeyTable(),
		logger:   zap.NewNop(),
		period:   PollPeriod,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run enables raw mode, starts the listener and polls until a terminal state.
// Raw mode is disabled on every return path, including panics.
func (l *Loop) Run(ctx context.Context) (res Result) {
	if l.raw != nil {
		if err := l.raw.EnableRawMode(); err != nil {
			l.logger.Error("raw mode enable failed", zap.Error(err))
			return Result{
				Outcome: Aborted,
				Final:   l.session.Accumulated(),
				Err:     &RawModeError{Op: "enable", Err: err},
			}
		}
	}

	defer func() {
		if err := l.renderer.Close(); err != nil {
			l.logger.Warn("renderer close failed", zap.Error(err))
		}
		if l.raw != nil {
			if err := l.raw.DisableRawMode(); err != nil {
				l.logger.Error("raw mode disable failed", zap.Error(err))
				res.RestoreErr = &RawModeError{Op: "disable", Err: err}
			}
		}
	}()

	l.last = l.session.Accumulated()
	l.logger.Debug("loop started",
		zap.Stringer("mode", l.session.Mode()),
		zap.Duration("accumulated", l.session.Accumulated()))

	l.events.Start()

	for {
		if r, done := l.step(ctx); done {
			l.finish(r)
			return r
		}
		l.clock.Sleep(l.period)
	}
}

// step runs one poll iteration and reports whether the loop is done
func (l *Loop) step(ctx context.Context) (Result, bool) {
	if ctx.Err() != nil {
		return l.abort(ErrInterrupted), true
	}

	now := l.clock.Now()
	ev, status := l.events.Poll()

	switch status {
	case input.StatusDisconnected:
		return l.abort(disconnected(l.events.Err())), true

	case input.StatusReady:
		switch intent := l.keys.Classify(ev); intent {
		case input.IntentQuit:
			return l.quit(now)
		case input.IntentToggle:
			return l.toggle(now)
		default:
			l.logger.Debug("input ignored",
				zap.Stringer("key", ev.Key),
				zap.String("rune", string(ev.Rune)))
		}
	}

	return l.tick(now)
}

// tick renders the live duration while running
func (l *Loop) tick(now time.Time) (Result, bool) {
	if l.session.Mode() != Running {
		return Result{}, false
	}

	d, err := l.session.Live(now)
	if err != nil {
		return l.abort(err), true
	}
	if err := l.render(d, Running); err != nil {
		return l.abort(err), true
	}
	if l.session.Expired(d) {
		return Result{Outcome: FinishedCountdownZero, Final: d}, true
	}
	return Result{}, false
}

func (l *Loop) toggle(now time.Time) (Result, bool) {
	if l.session.Mode() == Stopped {
		l.session.Resume(now)
		l.logger.Debug("resumed", zap.Duration("accumulated", l.session.Accumulated()))
		return Result{}, false
	}

	d, err := l.session.Pause(now)
	if err != nil {
		return l.abort(err), true
	}
	l.logger.Debug("paused", zap.Duration("accumulated", d))

	if err := l.render(d, Stopped); err != nil {
		return l.abort(err), true
	}
	if l.session.Expired(d) {
		return Result{Outcome: FinishedCountdownZero, Final: d}, true
	}
	return Result{}, false
}

// quit renders the final value once more and finishes
func (l *Loop) quit(now time.Time) (Result, bool) {
	d, err := l.session.Live(now)
	if err != nil {
		return l.abort(err), true
	}
	if err := l.render(d, l.session.Mode()); err != nil {
		return l.abort(err), true
	}
	return Result{Outcome: FinishedNormally, Final: d}, true
}

func (l *Loop) render(d time.Duration, mode Mode) error {
	if err := l.renderer.Render(d, mode); err != nil {
		return &RenderError{Err: err}
	}
	l.last = d
	return nil
}

func (l *Loop) abort(err error) Result {
	return Result{
		Outcome: Aborted,
		Final:   l.last,
		Err:     err,
	}
}

func (l *Loop) finish(r Result) {
	if r.Outcome == Aborted {
		l.logger.Error("loop aborted",
			zap.Error(r.Err),
			zap.Duration("final", r.Final))
		return
	}
	l.logger.Info("loop finished",
		zap.Stringer("outcome", r.Outcome),
		zap.Duration("final", r.Final))
}
