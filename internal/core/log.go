package core

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger returns the default logger tagged with the sim name.
func Logger(sim string) *slog.Logger {
	return slog.Default().With("sim", sim)
}

// NewLogger builds a text (or JSON) logger writing to w at the named level.
func NewLogger(w io.Writer, level string, json bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
