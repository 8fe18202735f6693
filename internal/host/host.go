// Package host detects what the simulator is running inside and carries the titles each surface uses.
package host

import (
	"os"

	"golang.org/x/term"
)

// Mode is the environment the simulator runs in.
type Mode int

const (
	// ModeTerminal is an interactive terminal: the TUI owns the window, sets its title and confirms before closing.
	ModeTerminal Mode = iota
	// ModePipe means stdin is not a terminal: input is read as CSS and the converted stylesheet is printed.
	ModePipe
)

const (
	TerminalTitle = "YTLCV2 - YouTube Live Chat Simulator"
	BrowserTitle  = "YTLCV2 Simulator (Browser Mode)"

	CloseConfirmation = "Are you sure you want to close? Your CSS changes might not be saved."
)

func (m Mode) String() string {
	if m == ModeTerminal {
		return "Desktop Mode"
	}
	return "Pipe Mode"
}

// Detect inspects stdin. A redirected stdout alone does not switch to pipe mode.
func Detect() Mode {
	return detect(int(os.Stdin.Fd()), term.IsTerminal)
}

func detect(stdin int, isTerminal func(int) bool) Mode {
	if isTerminal(stdin) {
		return ModeTerminal
	}
	return ModePipe
}
