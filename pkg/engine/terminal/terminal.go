// Package terminal reports the dimensions of the controlling terminal for
// the debug renderer.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the terminal width and height, falling back to the
// defaults when stdout is not a terminal.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current terminal width.
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// IsInteractive reports whether stdout is attached to a terminal. The debug
// renderer only clears the screen between frames when it is.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
