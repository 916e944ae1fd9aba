// Package logging constructs the slog loggers used throughout mcdgen.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns the application logger at the given level. It writes text
// records to Stderr: Stdout is reserved for converted JSON documents and
// rendered parameter reports.
func New(level slog.Level) *slog.Logger {
	return slog.New(newHandler(os.Stderr, level))
}

// NewNop returns a logger that discards all records.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHandler builds the shared text handler. The "error" attribute key
// is rewritten to "err" so log lines stay uniform across packages.
func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	})
}
