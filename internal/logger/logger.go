package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/furnirent/internal/config"
)

// New creates a preconfigured slog.Logger honoring the configured level.
func New(cfg *config.Config) *slog.Logger {
	level := ""
	if cfg != nil {
		level = cfg.LogLevel
	}
	return newJSONLogger(os.Stdout, ParseLevel(level))
}

// ParseLevel maps a level name onto slog levels. Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

func newJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
