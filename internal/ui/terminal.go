package ui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsAgentMode reports whether output is being consumed by a tool rather than
// a person (QUILL_AGENT=1 or --json hosts set it). Agent mode strips all
// styling so output stays machine-parseable.
func IsAgentMode() bool {
	return os.Getenv("QUILL_AGENT") != ""
}

// ShouldUseColor decides whether styled output is appropriate.
// Precedence: NO_COLOR > CLICOLOR_FORCE > CLICOLOR=0 > TTY detection.
func ShouldUseColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if os.Getenv("CLICOLOR_FORCE") != "" && os.Getenv("CLICOLOR_FORCE") != "0" {
		return true
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if IsAgentMode() {
		return false
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// IsInteractive reports whether stdin and stdout are both terminals, i.e.
// prompting the user is possible.
func IsInteractive() bool {
	if IsAgentMode() {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the stdout width, or fallback when it cannot be
// detected (pipes, tests).
func TerminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}
