package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/patrickwarner/webapp/internal/middleware"
)

const (
	// HealthzPath is the liveness/readiness endpoint.
	HealthzPath     = "/healthz"
	healthzEndpoint = "healthz"
)

var errNoRecorder = errors.New("health recorder not configured")

// standardHeaders are set on every /healthz response so no intermediary
// caches the health status.
var standardHeaders = []struct{ key, value string }{
	{"Cache-Control", "no-cache, no-store, must-revalidate"},
	{"Pragma", "no-cache"},
	{"X-Content-Type-Options", "nosniff"},
}

func setStandardHeaders(w http.ResponseWriter) {
	h := w.Header()
	for _, sh := range standardHeaders {
		h.Set(sh.key, sh.value)
	}
}

// HealthzHandler serves GET /healthz. The request must have no query
// parameters and no body; a valid request records a health check and
// answers 200, or 503 if the record could not be written. The body is
// always empty.
func (s *Server) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := middleware.LoggerFromRequest(r, s.Logger)

	status := s.checkHealth(r.Context(), DescribeRequest(r), logger)
	s.respond(w, r, status, start)
}

// MethodNotAllowedHandler answers 405 for every method on /healthz other than
// GET without inspecting the request.
func (s *Server) MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusMethodNotAllowed, time.Now())
}

func (s *Server) checkHealth(ctx context.Context, req RequestDescriptor, logger *zap.Logger) int {
	if err := validateHealthzRequest(req); err != nil {
		logger.Debug("rejected health check request", zap.Error(err))
		return http.StatusBadRequest
	}
	if err := s.recordCheck(ctx); err != nil {
		logger.Warn("health check failed", zap.Error(err))
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

// recordCheck turns a recorder panic into an error so it maps to 503 like
// any other recording failure.
func (s *Server) recordCheck(ctx context.Context) (err error) {
	if s.Recorder == nil {
		return errNoRecorder
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("recorder panic: %v", p)
		}
	}()
	return s.Recorder.RecordCheck(ctx)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, start time.Time) {
	setStandardHeaders(w)
	w.WriteHeader(status)

	s.Metrics.IncrementRequests(healthzEndpoint, r.Method, strconv.Itoa(status))
	s.Metrics.RecordRequestLatency(healthzEndpoint, r.Method, time.Since(start))
}
