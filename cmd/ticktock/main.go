package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/lixenwraith/ticktock/hms"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

const longHelp = `Stopwatch and countdown that redraw in place on the terminal.

Keys (raw input):
  space, k          pause / resume
  q, esc, enter     quit
  ctrl+c            quit

Keys (line input):
  <Enter>           pause / resume
  q<Enter>          quit

Countdown durations are [[hours:]minutes:]seconds, e.g. 90, 1:30, 1:00:00.`

// usageError marks errors caused by bad arguments
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	cancel()
	os.Exit(code)
}

// streams carries the process I/O so tests can substitute pipes
type streams struct {
	in  *os.File
	out io.Writer
	err io.Writer
}

// run parses args and executes the selected command, returning the exit code
func run(ctx context.Context, args []string, s streams) int {
	root := buildCLI(s)

	if err := root.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// The flag package has already printed the error and usage
		return 2
	}

	err := root.Run(ctx)
	var pe *hms.ParseError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, new(usageError)), errors.As(err, &pe):
		fmt.Fprintf(s.err, "error: %v\n", err)
		return 2
	default:
		fmt.Fprintf(s.err, "error: %v\n", err)
		return 1
	}
}

func buildCLI(s streams) *ffcli.Command {
	rootFlags := flag.NewFlagSet("ticktock", flag.ContinueOnError)
	rootFlags.SetOutput(s.err)
	showVersion := rootFlags.Bool("version", false, "print version and exit")

	swFlags := flag.NewFlagSet("ticktock stopwatch", flag.ContinueOnError)
	swFlags.SetOutput(s.err)
	swOpts := registerFlags(swFlags)

	stopwatchCmd := &ffcli.Command{
		Name:       "stopwatch",
		ShortUsage: "ticktock stopwatch [flags]",
		ShortHelp:  "Count up from zero",
		LongHelp:   longHelp,
		FlagSet:    swFlags,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 0 {
				return usageError{fmt.Errorf("stopwatch takes no arguments, got %q", args)}
			}
			return execTimer(ctx, s, swFlags, swOpts, nil)
		},
	}

	cdFlags := flag.NewFlagSet("ticktock countdown", flag.ContinueOnError)
	cdFlags.SetOutput(s.err)
	cdOpts := registerFlags(cdFlags)

	countdownCmd := &ffcli.Command{
		Name:       "countdown",
		ShortUsage: "ticktock countdown [flags] <[[h:]m:]s>",
		ShortHelp:  "Count down to zero",
		LongHelp:   longHelp,
		FlagSet:    cdFlags,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return usageError{errors.New("countdown requires exactly one duration argument")}
			}
			target, err := hms.Parse(args[0])
			if err != nil {
				return err
			}
			d := target.Duration()
			return execTimer(ctx, s, cdFlags, cdOpts, &d)
		},
	}

	var root *ffcli.Command
	root = &ffcli.Command{
		ShortUsage:  "ticktock [flags] <subcommand>",
		ShortHelp:   "Terminal stopwatch and countdown",
		LongHelp:    longHelp,
		FlagSet:     rootFlags,
		Subcommands: []*ffcli.Command{stopwatchCmd, countdownCmd},
		Exec: func(_ context.Context, args []string) error {
			if *showVersion {
				fmt.Fprintf(s.out, "ticktock %s\n", version)
				return nil
			}
			if len(args) > 0 {
				fmt.Fprintf(s.err, "unknown command %q\n", args[0])
			}
			fmt.Fprintln(s.err, ffcli.DefaultUsageFunc(root))
			return flag.ErrHelp
		},
	}
	return root
}
