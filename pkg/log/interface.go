// Package log is the structured logging layer of scoreknn.
//
// Loggers are slog-backed by default. Library packages log per-call details
// at Debug; the analysis driver logs one Info record per evaluated feature:
//
//	logger := log.GetLoggerWithName("analysis")
//	logger.Info("Feature evaluated",
//	    log.FeatureKey, 0,
//	    log.AccuracyKey, 0.92,
//	)
package log

import (
	"context"
)

// Logger is the subset of *slog.Logger that scoreknn packages depend on.
// Fields are alternating key/value pairs; pass errors under ErrAttrKey so the
// handler can attach a stack trace.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a child logger carrying fields on every record.
	With(fields ...any) Logger

	Enabled(ctx context.Context, level Level) bool
}

// Level mirrors slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// LoggerProvider creates loggers. Tests swap in a TestLoggerProvider with
// SetProvider.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}
