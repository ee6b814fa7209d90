// Package cli provides the command-line interface for release ingestion.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/newstack-cloud/bluelink-docs/internal/logger"
)

// NewLoggers creates default loggers with JSON output on stderr.
func NewLoggers(level slog.Level) (*slog.Logger, *slog.Logger) {
	return NewLoggersWithWriter(level, "json", os.Stderr)
}

// NewLoggersWithWriter creates the stdout and stderr loggers.
// Both write structured records to w so that standard output stays free for
// progress lines and tables. An unknown format falls back to JSON.
func NewLoggersWithWriter(level slog.Level, format string, w io.Writer) (*slog.Logger, *slog.Logger) {
	if w == nil {
		w = os.Stderr
	}
	l, err := logger.New(level.String(), format, w)
	if err != nil {
		l, _ = logger.New("info", "json", w)
	}

	stdout := l
	stderr := l
	return stdout, stderr
}

// ParseLogLevelOrDefault parses a log level string or returns a default level.
func ParseLogLevelOrDefault(levelStr string) slog.Level {
	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		return slog.LevelInfo // Default to info level
	}
	return level
}
