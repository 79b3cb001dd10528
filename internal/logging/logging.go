// Package logging builds the slog logger used by the CLI. Logs go to
// stderr so stdout stays clean for plans and progress lines.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Config selects the logger's destination and verbosity
type Config struct {
	Debug  bool
	JSON   bool
	Output io.Writer
}

// New creates a logger. Debug enables resolver traces; otherwise only
// warnings and errors are written.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
