// Package logging provides structured logging for contentvet on top of
// log/slog, with a small interface so packages do not depend on a concrete
// logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger is the structured logging interface used across the codebase.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...any)
	Info(ctx context.Context, msg string, fields ...any)
	Warn(ctx context.Context, err error, msg string, fields ...any)
	Error(ctx context.Context, err error, msg string, fields ...any)

	With(fields ...any) Logger
	WithComponent(component string) Logger
}

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
	Output io.Writer
}

// DefaultConfig returns a text logger at info level on stderr. Reports go to
// stdout, diagnostics to stderr, so JSON output stays machine-parseable.
func DefaultConfig() *Config {
	return &Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type vetLogger struct {
	logger    *slog.Logger
	component string
}

// New creates a structured logger.
func New(config *Config) Logger {
	if config == nil {
		config = DefaultConfig()
	}
	opts := &slog.HandlerOptions{Level: config.Level}
	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(config.Output, opts)
	} else {
		handler = slog.NewTextHandler(config.Output, opts)
	}
	return &vetLogger{logger: slog.New(handler)}
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() Logger {
	return &vetLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *vetLogger) Debug(ctx context.Context, msg string, fields ...any) {
	l.log(ctx, slog.LevelDebug, nil, msg, fields...)
}

func (l *vetLogger) Info(ctx context.Context, msg string, fields ...any) {
	l.log(ctx, slog.LevelInfo, nil, msg, fields...)
}

func (l *vetLogger) Warn(ctx context.Context, err error, msg string, fields ...any) {
	l.log(ctx, slog.LevelWarn, err, msg, fields...)
}

func (l *vetLogger) Error(ctx context.Context, err error, msg string, fields ...any) {
	l.log(ctx, slog.LevelError, err, msg, fields...)
}

func (l *vetLogger) With(fields ...any) Logger {
	return &vetLogger{
		logger:    l.logger.With(fields...),
		component: l.component,
	}
}

func (l *vetLogger) WithComponent(component string) Logger {
	return &vetLogger{
		logger:    l.logger,
		component: component,
	}
}

func (l *vetLogger) log(ctx context.Context, level slog.Level, err error, msg string, fields ...any) {
	if !l.logger.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields)/2+2)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			attrs = append(attrs, slog.Any(key, fields[i+1]))
		}
	}
	record := slog.NewRecord(time.Now(), level, msg, 0)
	record.AddAttrs(attrs...)
	_ = l.logger.Handler().Handle(ctx, record)
}

// Timer tracks the duration of one operation.
type Timer struct {
	logger    Logger
	operation string
	start     time.Time
}

// StartOperation begins timing an operation.
func StartOperation(logger Logger, operation string) *Timer {
	return &Timer{
		logger:    logger.With("operation", operation),
		operation: operation,
		start:     time.Now(),
	}
}

// End logs the operation duration.
func (t *Timer) End(ctx context.Context) {
	t.logger.Info(ctx, "operation completed",
		"duration_ms", time.Since(t.start).Milliseconds())
}

// EndWithError logs the operation duration with a failure.
func (t *Timer) EndWithError(ctx context.Context, err error) {
	t.logger.Error(ctx, err, "operation failed",
		"duration_ms", time.Since(t.start).Milliseconds())
}
