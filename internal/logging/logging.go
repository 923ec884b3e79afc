// Package logging sets up the JSON slog logger. Records go to a file because
// the interactive screen owns stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Logger is a slog.Logger bound to an open log file.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *os.File
}

// Open creates the parent directories of path, opens it for append and
// returns a logger at the given level. If the file cannot be opened the
// logger writes to fallback instead.
func Open(path, level string, fallback io.Writer) *Logger {
	l := &Logger{level: &slog.LevelVar{}}
	l.level.Set(ParseLevel(level))

	w := fallback
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				l.file = f
				w = f
			}
		}
	}
	if w == nil {
		w = io.Discard
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     l.level,
		AddSource: false,
	})
	l.Logger = slog.New(handler)
	return l
}

// WithSession tags every record with a fresh session id.
func (l *Logger) WithSession() *slog.Logger {
	return l.With("session", uuid.NewString())
}

// SetLevel changes the level of l and every logger derived from it.
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
