package kmcluster

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with kmcluster-specific context.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRunID tags the logger with a clustering run id.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogSeed logs the selection of one initial centroid.
func (l *Logger) LogSeed(ctx context.Context, round, pointIndex int, totalWeight float64) {
	l.DebugContext(ctx, "seed selected",
		"round", round,
		"point", pointIndex,
		"total_weight", totalWeight,
	)
}

// LogPass logs one assignment pass.
func (l *Logger) LogPass(ctx context.Context, pass, reassigned int) {
	l.DebugContext(ctx, "assignment pass completed",
		"pass", pass,
		"reassigned", reassigned,
	)
}

// LogCluster logs the outcome of a clustering run.
func (l *Logger) LogCluster(ctx context.Context, points, passes int, err error) {
	switch {
	case err == nil:
		l.InfoContext(ctx, "clustering converged",
			"points", points,
			"passes", passes,
		)
	case isNonConvergent(err):
		l.WarnContext(ctx, "non-convergent clustering, inspect clusters visually to verify",
			"points", points,
			"passes", passes,
		)
	default:
		l.ErrorContext(ctx, "clustering failed",
			"points", points,
			"passes", passes,
			"error", err,
		)
	}
}

// LogEmptyCluster logs the empty-cluster policy being applied.
func (l *Logger) LogEmptyCluster(ctx context.Context, cluster int, policy EmptyClusterPolicy) {
	l.DebugContext(ctx, "empty cluster",
		"cluster", cluster,
		"policy", policy.String(),
	)
}
