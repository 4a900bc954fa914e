package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns the service's JSON logger. The level string comes straight
// from configuration; anything unparsable falls back to info rather than
// failing startup.
func New(level string) *slog.Logger {
	var lvl slog.LevelVar
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &lvl}))
}

// Discard returns a logger whose output goes nowhere, for tests that need
// a non-nil logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
