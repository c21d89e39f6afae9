package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries a caller supplied request id.
const RequestIDHeader = "X-Request-ID"

// WithRequestID returns middleware that tags the context logger with a
// request_id, taken from X-Request-ID or generated. Nothing is added to the
// response.
func WithRequestID(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			reqLogger := LoggerFromContext(r.Context(), logger).With(zap.String("request_id", id))
			ctx := context.WithValue(r.Context(), loggerKey{}, reqLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
