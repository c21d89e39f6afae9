// Package reporting summarises recorded health checks for administrative
// tooling. The HTTP handler never reads from the store.
package reporting

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Counter is the read side of a health check store.
type Counter interface {
	CountHealthChecks(ctx context.Context) (int64, error)
}

// HealthReport is a point-in-time summary of a health check store.
type HealthReport struct {
	Backend     string    `json:"backend"`      // Store backend name
	TotalChecks int64     `json:"total_checks"` // Records currently stored
	GeneratedAt time.Time `json:"generated_at"` // When the count was taken
}

// GenerateHealthReport counts the records in store.
func GenerateHealthReport(ctx context.Context, store Counter, backend string) (*HealthReport, error) {
	n, err := store.CountHealthChecks(ctx)
	if err != nil {
		return nil, fmt.Errorf("count health checks: %w", err)
	}
	return &HealthReport{
		Backend:     backend,
		TotalChecks: n,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// WriteText renders the report in the plain format used by the CLI.
func (r *HealthReport) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Health Check Report\n===================\nBackend:      %s\nTotal checks: %d\nGenerated at: %s\n",
		r.Backend, r.TotalChecks, r.GeneratedAt.Format(time.RFC3339))
	return err
}
