package minloc

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with minloc-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithNumPoints adds a num_points field to the logger.
func (l *Logger) WithNumPoints(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("num_points", n),
	}
}

// LogReduce logs one reduction pass.
func (l *Logger) LogReduce(ctx context.Context, numPoints int, res Result, dur time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reduction failed",
			"num_points", numPoints,
			"error", err,
		)
		return
	}
	if !res.Found {
		l.DebugContext(ctx, "reduction over empty store",
			"num_points", numPoints,
		)
		return
	}
	l.DebugContext(ctx, "reduction completed",
		"num_points", numPoints,
		"index", res.Index,
		"dist2", res.DistanceSquared,
		"duration", dur,
	)
}

// LogSnapshot logs a point-set snapshot operation.
func (l *Logger) LogSnapshot(ctx context.Context, filename string, numPoints int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"filename", filename,
			"num_points", numPoints,
		)
	}
}
