package engine

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig describes where and how the process logs.
type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	File       string // empty = stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogHandler builds the process slog handler. A non-empty File rotates through lumberjack.
func NewLogHandler(lc LogConfig) slog.Handler {
	var w io.Writer = os.Stderr
	if lc.File != "" {
		w = &lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAge:     lc.MaxAgeDays,
			Compress:   true,
		}
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(lc.Level)}
	if strings.EqualFold(lc.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
