package tui

import (
	"os"

	"golang.org/x/term"
)

// Interactive reports whether progress should be drawn as a live TUI: stderr must be
// a terminal and the process must not run under CI.
func Interactive() bool {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return false
	}
	ci := os.Getenv("CI")
	return ci != "true" && ci != "1"
}
