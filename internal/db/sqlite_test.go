package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	store, err := NewSQLite(WithPath(filepath.Join(t.TempDir(), "nested", "webapp.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteInsertAssignsIncreasingIDs(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	first, err := store.InsertHealthCheck(ctx, time.Now().UTC())
	require.NoError(t, err)
	second, err := store.InsertHealthCheck(ctx, time.Now().UTC())
	require.NoError(t, err)

	assert.Greater(t, second, first)

	n, err := store.CountHealthChecks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSQLiteDeleteKeepsSequence(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	last, err := store.InsertHealthCheck(ctx, time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, store.DeleteHealthChecks(ctx))
	n, err := store.CountHealthChecks(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	next, err := store.InsertHealthCheck(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Greater(t, next, last)
}

func TestSQLiteClosedStoreFails(t *testing.T) {
	store := newTestSQLite(t)
	require.NoError(t, store.Close())

	_, err := store.InsertHealthCheck(context.Background(), time.Now().UTC())
	assert.Error(t, err)
}

func TestSQLiteInMemory(t *testing.T) {
	store, err := NewSQLite()
	require.NoError(t, err)
	defer store.Close()

	_, err = store.InsertHealthCheck(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	n, err := store.CountHealthChecks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLiteSatisfiesHealthStore(t *testing.T) {
	var _ HealthStore = (*SQLite)(nil)
	var _ HealthStore = (*Postgres)(nil)
	var _ HealthStore = (*RedisStore)(nil)
}
