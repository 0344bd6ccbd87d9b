package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewSlogProvider(slog.Default().Handler())
)

// SetupLogger installs a JSON slog handler writing to w as both the slog
// default and the package-level provider. Attribute names follow the
// CloudLogging format.
func SetupLogger(w io.Writer, loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(slog.Level(level))
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     levelVar,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr.Key = "severity"
			case slog.MessageKey:
				attr.Key = "message"
			case slog.SourceKey:
				attr.Key = "logging.googleapis.com/sourceLocation"
			}
			return attr
		},
	}
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops))
	slog.SetDefault(slog.New(handler))

	p := &SlogProvider{handler: handler, level: levelVar}
	SetProvider(p)
	return nil
}

// ToLogLevel parses a textual level ("debug", "info", "warn", "error").
func ToLogLevel(level string) (Level, error) {
	switch level {
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SetProvider replaces the package-level provider used by GetLogger.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the default logger of the package-level provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with the given component name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// SlogProvider is a LoggerProvider backed by a slog.Handler.
type SlogProvider struct {
	handler slog.Handler
	level   *slog.LevelVar
}

// NewSlogProvider wraps handler. Records below the provider level are dropped
// in addition to whatever filtering the handler performs.
func NewSlogProvider(handler slog.Handler) *SlogProvider {
	return &SlogProvider{handler: handler, level: &slog.LevelVar{}}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *SlogProvider) GetLogger() Logger {
	return &slogLogger{logger: slog.New(p.handler), level: p.level}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *SlogProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}

type slogLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

func (l *slogLogger) log(level Level, msg string, fields ...any) {
	if !l.Enabled(context.Background(), level) {
		return
	}
	l.logger.Log(context.Background(), slog.Level(level), msg, fields...)
}

func (l *slogLogger) Debug(msg string, fields ...any) { l.log(LevelDebug, msg, fields...) }
func (l *slogLogger) Info(msg string, fields ...any)  { l.log(LevelInfo, msg, fields...) }
func (l *slogLogger) Warn(msg string, fields ...any)  { l.log(LevelWarn, msg, fields...) }
func (l *slogLogger) Error(msg string, fields ...any) { l.log(LevelError, msg, fields...) }

func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: l.logger.With(fields...), level: l.level}
}

func (l *slogLogger) Enabled(ctx context.Context, level Level) bool {
	if slog.Level(level) < l.level.Level() {
		return false
	}
	return l.logger.Enabled(ctx, slog.Level(level))
}
