package seqkit

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with seqkit-specific context.
// This provides structured logging with consistent field names.
//
// Containers only log structural events (map growth, rehash, allocation
// failures) and only at debug or warn level, never per element.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithComponent tags every record with the emitting container.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// LogMapGrowth logs a deque map reallocation or recentring.
func (l *Logger) LogMapGrowth(oldSize, newSize, activeNodes int, err error) {
	if err != nil {
		l.Warn("map growth failed",
			"old_size", oldSize,
			"new_size", newSize,
			"active_nodes", activeNodes,
			"error", err,
		)
		return
	}
	l.Debug("map grown",
		"old_size", oldSize,
		"new_size", newSize,
		"active_nodes", activeNodes,
	)
}

// LogRehash logs a hash table bucket array replacement.
func (l *Logger) LogRehash(oldBuckets, newBuckets, elements int, err error) {
	if err != nil {
		l.Warn("rehash failed",
			"old_buckets", oldBuckets,
			"new_buckets", newBuckets,
			"elements", elements,
			"error", err,
		)
		return
	}
	l.Debug("rehash completed",
		"old_buckets", oldBuckets,
		"new_buckets", newBuckets,
		"elements", elements,
	)
}

// LogAllocFailure logs a rejected storage request that was rolled back.
func (l *Logger) LogAllocFailure(what string, err error) {
	l.Warn("allocation failed",
		"block", what,
		"error", err,
	)
}
