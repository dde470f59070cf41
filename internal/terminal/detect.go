// Package terminal reports whether the installer talks to a terminal.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// IsTerminalWriter reports whether w is a file attached to a terminal.
func IsTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
