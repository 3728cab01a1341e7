// Package terminal implements a text terminal front end for the interpreter.
//
// The display is drawn with ANSI escape sequences, the sound timer rings the
// terminal bell and keyboard input is read from a terminal in raw mode.
// Terminals do not report key releases, so a pressed key is released after a
// configurable delay without further input of the same key.
package terminal

import "errors"

// ErrRawModeUnsupported is returned if raw terminal input is not available
// on the current platform.
var ErrRawModeUnsupported = errors.New("raw terminal mode is not supported on this platform")

const (
	escape      = "\x1b["
	clearScreen = escape + "2J"
	cursorHome  = escape + "H"
	hideCursor  = escape + "?25l"
	showCursor  = escape + "?25h"
	bell        = "\a"
)
