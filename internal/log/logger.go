// Package log builds the application's slog logger from configuration:
// a coloured terminal handler for interactive runs, JSON for everything
// else.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vantahq/jobscout/internal/config"
)

// Logger owns a configured slog handler. Application code takes the
// *slog.Logger from Slog(); this wrapper exists so the handler can be
// installed as the process default (the gorm bridge logs through
// slog.Default).
type Logger struct {
	handler slog.Handler
	logger  *slog.Logger
}

// NewLogger creates a Logger from the app configuration, writing to
// stdout.
func NewLogger(cfg config.AppConfig) *Logger {
	return NewLoggerWithWriter(os.Stdout, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter creates a Logger that writes to w. Tests use this
// to capture output.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = newTerminalHandler(w, opts)
	}

	return &Logger{
		handler: handler,
		logger:  slog.New(handler),
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler returns the underlying slog.Handler.
func (l *Logger) Handler() slog.Handler {
	return l.handler
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// With returns a Logger carrying additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		handler: l.handler,
		logger:  l.logger.With(args...),
	}
}

// SetDefault installs this logger as the process-wide slog default, so
// packages that log through slog.Default (the gorm query logger) honor
// the configured level and format.
func (l *Logger) SetDefault() {
	slog.SetDefault(l.logger)
}
