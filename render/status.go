package render

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/lixenwraith/ticktock/timer"
)

// statusWidth fits the longest label so the duration column never shifts
const statusWidth = 7

// Hints for the two input vocabularies
const (
	HintRaw  = "space/k: pause  q/esc/enter: quit"
	HintLine = "<Enter>: pause  q<Enter>: quit"
)

// StatusLabel returns the fixed-width, uncoloured label for mode
func StatusLabel(mode timer.Mode) string {
	return fmt.Sprintf("%-*s", statusWidth, mode.String())
}

// palette colours the status label per mode
type palette struct {
	running *color.Color
	stopped *color.Color
}

func newPalette(enabled *bool) palette {
	p := palette{
		running: color.New(color.FgGreen, color.Bold),
		stopped: color.New(color.FgYellow),
	}
	if enabled != nil {
		if *enabled {
			p.running.EnableColor()
			p.stopped.EnableColor()
		} else {
			p.running.DisableColor()
			p.stopped.DisableColor()
		}
	}
	return p
}

func (p palette) status(mode timer.Mode) string {
	label := StatusLabel(mode)
	if mode == timer.Running {
		return p.running.Sprint(label)
	}
	return p.stopped.Sprint(label)
}
