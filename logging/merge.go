package logging

import (
	"context"
	"errors"
	"log/slog"
)

var _ slog.Handler = (*teeHandler)(nil)

// teeHandler sends each record to every handler that's enabled for its level.
type teeHandler struct {
	handlers []slog.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, handler.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(handler slog.Handler) slog.Handler {
		return handler.WithAttrs(attrs)
	})
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return h.each(func(handler slog.Handler) slog.Handler {
		return handler.WithGroup(name)
	})
}

func (h *teeHandler) each(fn func(handler slog.Handler) slog.Handler) *teeHandler {
	derived := &teeHandler{handlers: make([]slog.Handler, len(h.handlers))}
	for i, handler := range h.handlers {
		derived.handlers[i] = fn(handler)
	}
	return derived
}

// MergeHandlers combines handlers so a single [slog.Logger] writes to all of them.
// Passing a nil handler will panic.
func MergeHandlers(a, b slog.Handler, others ...slog.Handler) slog.Handler {
	handlers := append([]slog.Handler{a, b}, others...)
	for _, handler := range handlers {
		if handler == nil {
			panic("nil handler")
		}
	}
	return &teeHandler{handlers: handlers}
}
