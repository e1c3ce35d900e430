package util

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

func BuildLogger(level string) *slog.Logger {
	return BuildLoggerTo(os.Stderr, level)
}

func BuildLoggerTo(w io.Writer, level string) *slog.Logger {
	ops := &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLevel(level),
	}
	return slog.New(slog.NewJSONHandler(w, ops))
}

func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
