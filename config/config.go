package config

import (
	"errors"
	"fmt"
)

// Input backends
const (
	InputRaw  = "raw"
	InputLine = "line"
)

// Display backends
const (
	DisplayLine   = "line"
	DisplayScreen = "screen"
)

// ErrInvalid is matched by every Validate failure
var ErrInvalid = errors.New("invalid config")

// Config holds all runtime settings
type Config struct {
	Input   string     `mapstructure:"input"`   // raw | line
	Display string     `mapstructure:"display"` // line | screen
	Sound   bool       `mapstructure:"sound"`   // alarm when a countdown reaches zero
	Debug   bool       `mapstructure:"debug"`   // write a debug log
	LogDir  string     `mapstructure:"logDir"`
	Color   bool       `mapstructure:"color"`
	Keys    KeysConfig `mapstructure:"keys"`
}

// KeysConfig adds raw-mode key bindings on top of the defaults.
// Each character of a string is one key.
type KeysConfig struct {
	Toggle string `mapstructure:"toggle"`
	Quit   string `mapstructure:"quit"`
}

// Validate rejects unknown backends and key conflicts
func (c *Config) Validate() error {
	switch c.Input {
	case InputRaw, InputLine:
	default:
		return fmt.Errorf("%w: input %q (want %s or %s)", ErrInvalid, c.Input, InputRaw, InputLine)
	}

	switch c.Display {
	case DisplayLine, DisplayScreen:
	default:
		return fmt.Errorf("%w: display %q (want %s or %s)", ErrInvalid, c.Display, DisplayLine, DisplayScreen)
	}

	if c.Display == DisplayScreen && c.Input == InputLine {
		return fmt.Errorf("%w: display %s reads keys itself and cannot use line input", ErrInvalid, DisplayScreen)
	}

	for _, r := range c.Keys.Toggle {
		for _, q := range c.Keys.Quit {
			if r == q {
				return fmt.Errorf("%w: key %q bound to both toggle and quit", ErrInvalid, r)
			}
		}
	}
	return nil
}
