package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Postgres wraps a postgres DB connection.
type Postgres struct {
	DB *sqlx.DB

	checks sqlHealthChecks
}

// postgresSchemaSQL sets up the health_checks table if it doesn't exist.
const postgresSchemaSQL = `CREATE TABLE IF NOT EXISTS health_checks (
    check_id BIGSERIAL PRIMARY KEY,
    check_datetime TIMESTAMPTZ NOT NULL
);`

// InitPostgres connects to Postgres with connection pooling configuration.
func InitPostgres(dsn string, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (*Postgres, error) {
	// Register the otelsql wrapper for postgres
	driverName, err := otelsql.Register("postgres",
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	p := NewPostgres(sqlx.NewDb(db, "postgres"))
	if err := p.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	zap.L().Info("Connected to Postgres with connection pooling",
		zap.Int("max_open_conns", maxOpenConns),
		zap.Int("max_idle_conns", maxIdleConns),
		zap.Duration("conn_max_lifetime", connMaxLifetime))
	return p, nil
}

// NewPostgres wraps an already opened connection. The schema is not checked.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{DB: db, checks: sqlHealthChecks{db: db}}
}

// Close terminates the Postgres connection.
func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	if err := p.DB.Close(); err != nil {
		zap.L().Error("postgres close", zap.Error(err))
		return err
	}
	return nil
}

// ensureSchema creates the required tables if they do not exist.
func (p *Postgres) ensureSchema(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, postgresSchemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertHealthCheck stores a health check taken at the given time.
func (p *Postgres) InsertHealthCheck(ctx context.Context, at time.Time) (int64, error) {
	return p.checks.insert(ctx, at)
}

// CountHealthChecks returns the number of stored health checks.
func (p *Postgres) CountHealthChecks(ctx context.Context) (int64, error) {
	return p.checks.count(ctx)
}

// DeleteHealthChecks removes all stored health checks. The BIGSERIAL
// sequence keeps counting.
func (p *Postgres) DeleteHealthChecks(ctx context.Context) error {
	return p.checks.deleteAll(ctx)
}
