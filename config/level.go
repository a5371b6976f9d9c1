package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// ParseLevel reads a log level name like "debug" or "WARN".
// An empty string is [slog.LevelInfo].
func ParseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	level = strings.TrimSpace(level)
	if len(level) == 0 {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level '%s'", ErrInvalidConfig, level)
	}
	return lvl, nil
}
