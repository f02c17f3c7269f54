// Package render draws the timer on a terminal line that is rewritten in
// place on every tick.
//
// Layout, after the first render:
//
//	space/k: pause  q/esc/enter: quit
//	running 0:01:02.3
//
// The hint is printed once. The second line is erased and redrawn by each
// Render without a trailing newline; Close terminates it so later output
// starts on a fresh line.
package render
