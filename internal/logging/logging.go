// Package logging builds the application logger. Output goes to a size
// rotated file so the TUI owns the terminal.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dtg01100/prefedit/internal/config"
	"github.com/dtg01100/prefedit/pkg/utils"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a text logger writing to cfg.File. The returned closer
// releases the file.
func New(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	if err := utils.EnsureParentDir(cfg.File); err != nil {
		return nil, nil, err
	}

	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   false,
	}

	return NewWithWriter(w, cfg.Level), w, nil
}

// NewWithWriter returns a text logger writing to w at the named level.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler).With("app", "prefedit")
}

// ParseLevel maps a config level name to a slog level. Unknown names map to
// info.
func ParseLevel(level string) slog.Level {
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

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
