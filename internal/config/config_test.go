package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "READ_TIMEOUT", "SQLITE_MAX_OPEN_CONNS", "TRACING_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.StoreBackend)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 1, cfg.SQLiteMaxOpenConns)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("READ_TIMEOUT", "3")
	t.Setenv("WRITE_TIMEOUT", "250ms")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("TRACING_SAMPLE_RATE", "0.25")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.WriteTimeout)
	assert.Equal(t, 7, cfg.DBMaxOpenConns)
	assert.True(t, cfg.TracingEnabled)
	assert.InDelta(t, 0.25, cfg.TracingSampleRate, 1e-9)
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("TRACING_ENABLED", "maybe")

	cfg := Load()
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.False(t, cfg.TracingEnabled)
}
