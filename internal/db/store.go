package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickwarner/webapp/internal/config"
)

// Supported values for config.Config.StoreBackend.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

// ErrUnknownBackend is returned by Open for an unsupported STORE_BACKEND.
var ErrUnknownBackend = errors.New("unknown store backend")

// HealthStore persists health check records.
type HealthStore interface {
	// InsertHealthCheck writes one record stamped with at and returns the
	// identifier the store assigned to it.
	InsertHealthCheck(ctx context.Context, at time.Time) (int64, error)
	// CountHealthChecks returns the number of stored records.
	CountHealthChecks(ctx context.Context) (int64, error)
	// DeleteHealthChecks removes every record. Identifiers are not reused
	// afterwards.
	DeleteHealthChecks(ctx context.Context) error
	Close() error
}

// Open connects to the backend selected by cfg.StoreBackend.
func Open(cfg config.Config) (HealthStore, error) {
	switch cfg.StoreBackend {
	case BackendPostgres, "":
		return InitPostgres(cfg.PostgresDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime, cfg.DBConnMaxIdleTime)
	case BackendSQLite:
		return NewSQLite(
			WithPath(cfg.SQLitePath),
			WithMaxOpenConns(cfg.SQLiteMaxOpenConns),
			WithConnMaxLifetime(cfg.DBConnMaxLifetime),
		)
	case BackendRedis:
		return InitRedis(cfg.RedisAddr, cfg.RedisKeyPrefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StoreBackend)
	}
}
