// Package terminal provides the terminal-facing collaborators of the rasterizer.
//
// Features:
//   - Half-block pixel painter emitting direct ANSI SGR sequences
//   - True color (24-bit) and nearest 256-color palette fallback
//   - Terminal geometry from the controlling tty
//   - SIGWINCH resize notification
//   - Clean terminal restoration after a panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
