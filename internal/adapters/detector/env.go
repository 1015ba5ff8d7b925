// Package detector provides environment detection for terminal handling decisions.
package detector

import (
	"os"

	"golang.org/x/term"
)

// SessionMode represents how spawned tasks attach to the terminal.
type SessionMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto SessionMode = iota
	// ModeInteractive attaches children to the caller's terminal, pty included.
	ModeInteractive
	// ModePlain uses plain pipes, suitable for CI and redirected output.
	ModePlain
)

// Interactive reports whether the mode allows allocating a pty for children.
func (m SessionMode) Interactive() bool {
	return m == ModeInteractive
}

// DetectEnvironment returns the recommended session mode based on the environment.
// It checks if stdin and stdout are a TTY and if CI environment variables are set.
func DetectEnvironment() SessionMode {
	isTTY := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeInteractive
}

// ResolveMode applies user override flag to auto-detection.
// userFlag should be one of: "auto", "interactive", "tty", "plain", "ci", or empty.
func ResolveMode(autoDetected SessionMode, userFlag string) SessionMode {
	switch userFlag {
	case "interactive", "tty":
		return ModeInteractive
	case "plain", "ci":
		return ModePlain
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}
