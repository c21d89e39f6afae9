package middleware

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// loggerKey is the context key for the request scoped logger.
type loggerKey struct{}

// WithTraceLogger returns middleware that stores a logger tagged with the
// active span's trace and span ids in the request context.
func WithTraceLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if traced, ok := withTraceFields(r.Context(), logger); ok {
				r = r.WithContext(context.WithValue(r.Context(), loggerKey{}, traced))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoggerFromContext returns the request scoped logger, or fallback tagged
// with trace ids when a span is active, or fallback itself.
func LoggerFromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	if traced, ok := withTraceFields(ctx, fallback); ok {
		return traced
	}
	return fallback
}

// LoggerFromRequest is LoggerFromContext for an HTTP request.
func LoggerFromRequest(r *http.Request, fallback *zap.Logger) *zap.Logger {
	return LoggerFromContext(r.Context(), fallback)
}

func withTraceFields(ctx context.Context, logger *zap.Logger) (*zap.Logger, bool) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return nil, false
	}
	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	), true
}
