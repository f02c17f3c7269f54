package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/ticktock/audio"
	"github.com/lixenwraith/ticktock/config"
	"github.com/lixenwraith/ticktock/input"
	"github.com/lixenwraith/ticktock/logging"
	"github.com/lixenwraith/ticktock/render"
	"github.com/lixenwraith/ticktock/screen"
	"github.com/lixenwraith/ticktock/terminal"
	"github.com/lixenwraith/ticktock/timer"
)

// finishMessage is printed after a normal exit or a countdown reaching zero
const finishMessage = "finish!"

// options holds per-command flags; they override config values when set
type options struct {
	configPath string
	envFile    string
	input      string
	display    string
	sound      bool
	debug      bool
	logDir     string
	noColor    bool
}

func registerFlags(fs *flag.FlagSet) *options {
	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "config file (yaml, toml or json)")
	fs.StringVar(&o.envFile, "env-file", "", "load TICKTOCK_* variables from this file")
	fs.StringVar(&o.input, "input", config.InputRaw, "input backend: raw or line")
	fs.StringVar(&o.display, "display", config.DisplayLine, "display backend: line or screen")
	fs.BoolVar(&o.sound, "sound", false, "play an alarm when a countdown reaches zero")
	fs.BoolVar(&o.debug, "debug", false, "write a debug log")
	fs.StringVar(&o.logDir, "log-dir", logging.DefaultDir, "debug log directory")
	fs.BoolVar(&o.noColor, "no-color", false, "disable coloured status")
	return o
}

// loadConfig merges config sources with the flags explicitly set on fs
func loadConfig(fs *flag.FlagSet, o *options) (*config.Config, error) {
	cfg, err := config.Load(o.configPath, o.envFile)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = o.input
		case "display":
			cfg.Display = o.display
		case "sound":
			cfg.Sound = o.sound
		case "debug":
			cfg.Debug = o.debug
		case "log-dir":
			cfg.LogDir = o.logDir
		case "no-color":
			cfg.Color = !o.noColor
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, usageError{err}
	}
	return cfg, nil
}

// execTimer runs one timer session; target nil selects the stopwatch.
// Loop outcomes, including aborts, are reported and return nil.
func execTimer(ctx context.Context, s streams, fs *flag.FlagSet, o *options, target *time.Duration) (err error) {
	cfg, err := loadConfig(fs, o)
	if err != nil {
		return err
	}

	baseLogger, closeLog, err := logging.Setup(cfg.Debug, cfg.LogDir)
	if err != nil {
		return err
	}
	defer closeLog()

	now := time.Now()
	session := timer.NewStopwatch(now)
	if target != nil {
		session = timer.NewCountdown(*target, now)
	}

	logger := baseLogger.With(
		zap.String("session", uuid.NewString()),
		zap.String("mode", session.Kind()),
	)

	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			terminal.EmergencyReset(s.out)
			logger.Error("crash", zap.Any("panic", r), zap.ByteString("stack", stack))
			fmt.Fprintf(s.err, "\r\nStack Trace:\r\n%s\r\n", stack)
			err = fmt.Errorf("crash detected: %v", r)
		}
	}()

	b, err := newBackends(cfg, s)
	if err != nil {
		return err
	}
	defer b.close()

	var alarm *audio.Alarm
	if cfg.Sound && session.Countdown() {
		alarm = audio.NewAlarm()
		if err := alarm.Initialize(); err != nil {
			logger.Warn("audio unavailable", zap.Error(err))
		}
		defer alarm.Close()
	}

	keys := input.DefaultKeyTable()
	keys.BindRunes(cfg.Keys.Toggle, input.IntentToggle)
	keys.BindRunes(cfg.Keys.Quit, input.IntentQuit)

	listenerOpts := []input.ListenerOption{input.WithLogger(logger)}
	if b.raw != nil {
		listenerOpts = append(listenerOpts, input.WithFailureHook(func() { _ = b.raw.DisableRawMode() }))
	}
	listener := input.NewListener(b.source, listenerOpts...)

	loopOpts := []timer.Option{timer.WithKeyTable(keys), timer.WithLogger(logger)}
	if b.raw != nil {
		loopOpts = append(loopOpts, timer.WithRawMode(b.raw))
	}

	logger.Info("session started", zap.Duration("target", session.Target()),
		zap.String("input", cfg.Input), zap.String("display", cfg.Display))

	res := timer.NewLoop(session, listener, b.renderer, loopOpts...).Run(ctx)
	// Line input holds its own raw mode while reading; release it before printing
	b.close()

	if res.RestoreErr != nil {
		fmt.Fprintf(s.err, "warning: %v\n", res.RestoreErr)
	}

	switch res.Outcome {
	case timer.FinishedNormally, timer.FinishedCountdownZero:
		fmt.Fprintln(s.out, finishMessage)
	default:
		fmt.Fprintln(s.err, abortMessage(res.Err))
	}

	if res.Outcome == timer.FinishedCountdownZero && alarm != nil {
		select {
		case <-alarm.Play():
		case <-time.After(audio.AlarmDuration + time.Second):
		case <-ctx.Done():
		}
	}
	return nil
}

// abortMessage renders a loop abort cause for the user
func abortMessage(err error) string {
	var re *timer.RenderError
	var rme *timer.RawModeError
	switch {
	case errors.Is(err, timer.ErrInterrupted):
		return "interrupted"
	case errors.Is(err, timer.ErrOverflow):
		return "time overflow"
	case errors.Is(err, timer.ErrDisconnected):
		return err.Error()
	case errors.As(err, &rme):
		if errors.Is(err, terminal.ErrNotTerminal) {
			return "cannot " + rme.Op + " raw mode: stdin is not a terminal (try -input line)"
		}
		return "cannot " + rme.Op + " raw mode: " + rme.Err.Error()
	case errors.As(err, &re):
		return "display failed: " + re.Err.Error()
	case err == nil:
		return "aborted"
	}
	return err.Error()
}

// backends bundles the deployment-specific source, renderer and raw switch
type backends struct {
	source   input.Source
	renderer timer.Renderer
	raw      timer.RawMode
	closers  []func() error
}

func newBackends(cfg *config.Config, s streams) (*backends, error) {
	if cfg.Display == config.DisplayScreen {
		scr, err := screen.Open(render.HintRaw)
		if err != nil {
			return nil, fmt.Errorf("open screen: %w", err)
		}
		return &backends{source: scr, renderer: scr, raw: scr}, nil
	}

	renderOpts := []render.Option{}
	if !cfg.Color {
		renderOpts = append(renderOpts, render.WithColor(false))
	}

	if cfg.Input == config.InputLine {
		ls, err := input.NewLineSource(s.in, s.out)
		if err != nil {
			return nil, fmt.Errorf("open line input: %w", err)
		}
		renderOpts = append(renderOpts, render.WithHint(render.HintLine))
		return &backends{
			source:   ls,
			renderer: render.NewLineRenderer(s.out, renderOpts...),
			closers:  []func() error{ls.Close},
		}, nil
	}

	renderOpts = append(renderOpts, render.WithHint(render.HintRaw))
	return &backends{
		source:   input.NewRawSource(terminal.NewBackend(s.in)),
		renderer: render.NewLineRenderer(s.out, renderOpts...),
		raw:      terminal.NewTTY(s.in),
	}, nil
}

// close releases backend resources. Idempotent.
func (b *backends) close() {
	for _, c := range b.closers {
		_ = c()
	}
	b.closers = nil
}
