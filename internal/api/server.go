package api

import (
	"context"

	"go.uber.org/zap"

	"github.com/patrickwarner/webapp/internal/observability"
)

// HealthRecorder records one health check per call.
type HealthRecorder interface {
	RecordCheck(ctx context.Context) error
}

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger   *zap.Logger
	Recorder HealthRecorder
	Metrics  observability.MetricsRegistry
}

// NewServer constructs a Server.
func NewServer(logger *zap.Logger, recorder HealthRecorder, metrics observability.MetricsRegistry) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Server{
		Logger:   logger,
		Recorder: recorder,
		Metrics:  metrics,
	}
}
