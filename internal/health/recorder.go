// Package health records health check events in persistent storage.
package health

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/patrickwarner/webapp/internal/models"
	"github.com/patrickwarner/webapp/internal/observability"
)

// Inserter is the part of a store the recorder writes through.
type Inserter interface {
	InsertHealthCheck(ctx context.Context, at time.Time) (int64, error)
}

// Recorder persists one timestamped record per call to RecordCheck.
type Recorder struct {
	store   Inserter
	backend string
	logger  *zap.Logger
	metrics observability.MetricsRegistry
	tracer  trace.Tracer

	// now is replaced in tests.
	now func() time.Time
}

// NewRecorder constructs a Recorder writing to store. backend labels metrics
// and spans.
func NewRecorder(store Inserter, backend string, logger *zap.Logger, metrics observability.MetricsRegistry) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Recorder{
		store:   store,
		backend: backend,
		logger:  logger,
		metrics: metrics,
		tracer:  observability.GetTracer("health"),
		now:     time.Now,
	}
}

// RecordCheck writes a single record stamped with the current time. It makes
// exactly one attempt; any store error is returned unchanged in kind.
func (r *Recorder) RecordCheck(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "health.RecordCheck",
		trace.WithAttributes(attribute.String("store.backend", r.backend)))
	defer span.End()

	check := models.HealthCheck{CheckedAt: r.now().UTC()}
	start := time.Now()
	id, err := r.store.InsertHealthCheck(ctx, check.CheckedAt)
	r.metrics.RecordStoreLatency(r.backend, time.Since(start))
	if err != nil {
		r.metrics.IncrementHealthChecks(observability.OutcomeFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "record health check")
		return fmt.Errorf("record health check: %w", err)
	}

	check.ID = id
	r.metrics.IncrementHealthChecks(observability.OutcomeRecorded)
	span.SetAttributes(attribute.Int64("health_check.id", check.ID))
	if observability.ShouldSample(observability.GetSamplingRate()) {
		r.logger.Debug("health check recorded",
			zap.Int64("check_id", check.ID),
			zap.Time("check_datetime", check.CheckedAt),
			zap.String("backend", r.backend))
	}
	return nil
}
