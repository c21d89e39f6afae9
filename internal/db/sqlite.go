package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SQLite pragmas applied when the database is opened.
const defaultPragma = `
PRAGMA journal_mode=WAL;
PRAGMA busy_timeout=5000;
PRAGMA synchronous=NORMAL;
`

// sqliteSchemaSQL uses AUTOINCREMENT so identifiers of deleted rows are never
// handed out again.
const sqliteSchemaSQL = `CREATE TABLE IF NOT EXISTS health_checks (
    check_id INTEGER PRIMARY KEY AUTOINCREMENT,
    check_datetime TIMESTAMP NOT NULL
);`

type sqliteConfig struct {
	path            string
	pragmas         string
	maxOpenConns    int
	connMaxLifetime time.Duration
}

// SQLiteOption configures NewSQLite.
type SQLiteOption func(*sqliteConfig)

// WithPath sets the database file. Use ":memory:" for an in-memory database,
// which only makes sense together with WithMaxOpenConns(1).
func WithPath(path string) SQLiteOption {
	return func(c *sqliteConfig) {
		c.path = path
	}
}

// WithPragmas replaces the default pragmas.
func WithPragmas(pragmas string) SQLiteOption {
	return func(c *sqliteConfig) {
		c.pragmas = pragmas
	}
}

// WithMaxOpenConns sets the maximum number of open connections.
func WithMaxOpenConns(n int) SQLiteOption {
	return func(c *sqliteConfig) {
		c.maxOpenConns = n
	}
}

// WithConnMaxLifetime sets the maximum lifetime of a connection.
func WithConnMaxLifetime(d time.Duration) SQLiteOption {
	return func(c *sqliteConfig) {
		c.connMaxLifetime = d
	}
}

// SQLite is a file backed health check store.
type SQLite struct {
	DB   *sqlx.DB
	Path string

	checks sqlHealthChecks
}

// NewSQLite opens (creating if needed) a SQLite database and ensures the
// health_checks table exists.
func NewSQLite(opts ...SQLiteOption) (*SQLite, error) {
	cfg := &sqliteConfig{
		path:         ":memory:",
		pragmas:      defaultPragma,
		maxOpenConns: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	dsn := ":memory:"
	if cfg.path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure parent directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_txlock=immediate&mode=rwc", cfg.path)
	}

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}
	if cfg.maxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.maxOpenConns)
	}
	if cfg.connMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.connMaxLifetime)
	}

	if _, err := db.Exec(cfg.pragmas); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(sqliteSchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	zap.L().Info("Opened SQLite store", zap.String("driver", driverID), zap.String("path", cfg.path))
	return &SQLite{DB: db, Path: cfg.path, checks: sqlHealthChecks{db: db}}, nil
}

// Close closes the underlying database. Subsequent writes fail.
func (s *SQLite) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// InsertHealthCheck stores a health check taken at the given time.
func (s *SQLite) InsertHealthCheck(ctx context.Context, at time.Time) (int64, error) {
	return s.checks.insert(ctx, at)
}

// CountHealthChecks returns the number of stored health checks.
func (s *SQLite) CountHealthChecks(ctx context.Context) (int64, error) {
	return s.checks.count(ctx)
}

// DeleteHealthChecks removes all stored health checks.
func (s *SQLite) DeleteHealthChecks(ctx context.Context) error {
	return s.checks.deleteAll(ctx)
}
