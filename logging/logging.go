// Package logging builds the [slog.Logger] used by the cmdargs shell.
package logging

import (
	"fmt"
	"github.com/saylorsolutions/cmdargs/config"
	"golang.org/x/term"
	"io"
	"log/slog"
	"os"
	"strings"
)

type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger that writes to w.
// With the "auto" format, terminals get text output and anything else gets JSON.
//
// When cfg.File is set, JSON logs are also appended to that file, and the returned [io.Closer] closes it.
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "auto":
		if IsTerminal(w) {
			handler = slog.NewTextHandler(w, opts)
		} else {
			handler = slog.NewJSONHandler(w, opts)
		}
	default:
		return nil, nil, fmt.Errorf("%w: unknown log format '%s'", config.ErrInvalidConfig, cfg.Format)
	}
	if len(cfg.File) == 0 {
		return slog.New(handler), nopCloser{}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(MergeHandlers(handler, slog.NewJSONHandler(f, opts))), f, nil
}
