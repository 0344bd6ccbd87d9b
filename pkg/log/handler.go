package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// ErrFmtHandler is a slog handler that expands errors passed under ErrAttrKey:
// it attaches the cockroachdb/errors stacktrace and the concrete error type.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler so that records carrying an error
// attribute also carry StacktraceAttrKey and ErrorTypeKey attributes.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{
		handler: handler,
	}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var target error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				target = err
			}
			return false
		}
		return true
	})
	if target != nil {
		if stacktrace := extractStacktrace(target); stacktrace != "" {
			r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
		}
		r.AddAttrs(slog.String(ErrorTypeKey, errorType(target)))
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// errorType reports the innermost error's type name, skipping the
// cockroachdb stack wrappers.
func errorType(err error) string {
	return fmt.Sprintf("%T", errors.UnwrapAll(err))
}
