// Package terminal provides the low-level pieces for a raw-mode line UI.
//
// Features:
//   - Raw mode enable/disable over golang.org/x/term, safe to call repeatedly
//   - Poll-based stdin backend with escape-timeout support
//   - Byte stream key decoding (control keys, CSI/SS3 sequences, UTF-8 runes)
//   - Pre-allocated ANSI fragments for in-place line redraw
//   - Emergency restoration for crash paths
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
