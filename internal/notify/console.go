// Package notify implements the console Notifier.
//
// The original tool raised modal warning dialogs when a display was
// available; a CLI has no modal path, so the console writer is the
// "no display" branch, styled when stderr is a terminal.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Console writes warning notices to a stream, colorized when the stream
// is an interactive terminal.
type Console struct {
	out     io.Writer
	profile termenv.Profile
}

// NewConsole returns a Console writing to stderr.
func NewConsole() *Console {
	profile := termenv.Ascii
	if term.IsTerminal(int(os.Stderr.Fd())) {
		profile = termenv.ColorProfile()
	}
	return &Console{out: os.Stderr, profile: profile}
}

// NewConsoleWriter returns a Console writing plain text to w.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w, profile: termenv.Ascii}
}

// Warn implements ports.Notifier. It is best-effort: write errors are
// swallowed so a broken stream never blocks program logic.
func (c *Console) Warn(title, message string) {
	heading := termenv.String("Warning: " + title).Foreground(c.profile.Color("#f59e0b")).Bold()
	fmt.Fprintln(c.out, heading)
	fmt.Fprintln(c.out, message)
}
