package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	insertHealthCheckSQL  = `INSERT INTO health_checks (check_datetime) VALUES (?) RETURNING check_id`
	countHealthChecksSQL  = `SELECT COUNT(*) FROM health_checks`
	deleteHealthChecksSQL = `DELETE FROM health_checks`
)

// sqlHealthChecks implements the health_checks queries shared by the
// relational backends. Placeholders are rebound for the driver in use.
type sqlHealthChecks struct {
	db *sqlx.DB
}

func (s sqlHealthChecks) insert(ctx context.Context, at time.Time) (int64, error) {
	var id int64
	if err := s.db.GetContext(ctx, &id, s.db.Rebind(insertHealthCheckSQL), at); err != nil {
		return 0, fmt.Errorf("insert health check: %w", err)
	}
	return id, nil
}

func (s sqlHealthChecks) count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, countHealthChecksSQL); err != nil {
		return 0, fmt.Errorf("count health checks: %w", err)
	}
	return n, nil
}

func (s sqlHealthChecks) deleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, deleteHealthChecksSQL); err != nil {
		return fmt.Errorf("delete health checks: %w", err)
	}
	return nil
}
