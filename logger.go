package sortedbucket

import (
	"log/slog"
	"os"

	"github.com/hupe1980/sortedbucket/engine"
)

// Logger wraps slog.Logger with container-specific helpers. This provides
// structured logging with consistent field names across operations.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithKind adds an engine kind field to the logger.
func (l *Logger) WithKind(kind engine.Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// WithDensity adds a bucket density field to the logger.
func (l *Logger) WithDensity(density int) *Logger {
	return &Logger{
		Logger: l.Logger.With("density", density),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs the construction of a container.
func (l *Logger) LogBuild(kind engine.Kind, count int) {
	l.Info("container built",
		"kind", kind.String(),
		"count", count,
	)
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(key any, copies int) {
	l.Debug("insert completed",
		"key", key,
		"copies", copies,
	)
}

// LogInsertSeq logs a sequence insert.
func (l *Logger) LogInsertSeq(count int) {
	l.Debug("sequence insert completed",
		"count", count,
	)
}

// LogErase logs an erase operation.
func (l *Logger) LogErase(key any, removed int) {
	l.Debug("erase completed",
		"key", key,
		"removed", removed,
	)
}

// LogRank logs a rank query.
func (l *Logger) LogRank(key any, rank int) {
	l.Debug("rank computed",
		"key", key,
		"rank", rank,
	)
}

// LogValidate logs an invariant sweep.
func (l *Logger) LogValidate(kind engine.Kind, err error) {
	if err != nil {
		l.Error("validation failed",
			"kind", kind.String(),
			"error", err,
		)
	} else {
		l.Debug("validation passed",
			"kind", kind.String(),
		)
	}
}
