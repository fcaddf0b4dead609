package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/graphquest/internal/config"
)

// Setup configures the global slog logger based on environment. Logs go to w,
// or stderr when w is nil, so they stay out of the game transcript on stdout.
func Setup(cfg *config.Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithMode tags a logger with the game mode being played
func WithMode(logger *slog.Logger, mode string) *slog.Logger {
	return logger.With("mode", mode)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
