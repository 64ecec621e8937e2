package plwah

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/plwah/operation"
)

// Logger wraps slog.Logger with plwah-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithSteps adds a steps field to the logger.
func (l *Logger) WithSteps(steps int) *Logger {
	return &Logger{
		Logger: l.Logger.With("steps", steps),
	}
}

// LogExec logs an evaluation.
func (l *Logger) LogExec(ctx context.Context, steps, records int, stats operation.Stats, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "exec failed",
			"steps", steps,
			"resolved", stats.Resolved,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "exec completed",
		"steps", steps,
		"records", records,
		"evaluated", stats.Evaluated,
		"resolved", stats.Resolved,
		"skipped", stats.Skipped,
		"short_circuits", stats.ShortCircuits,
		"elapsed", elapsed,
	)
}

// LogResolve logs lazy operand resolution.
func (l *Logger) LogResolve(ctx context.Context, resolved int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "resolve failed",
			"resolved", resolved,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "resolve completed",
		"resolved", resolved,
		"elapsed", elapsed,
	)
}

// LogRelease logs operation teardown.
func (l *Logger) LogRelease(ctx context.Context, steps int, memoryInUse int64) {
	l.DebugContext(ctx, "operation released",
		"steps", steps,
		"memory_in_use", memoryInUse,
	)
}
