package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/patrickwarner/webapp/internal/db"
	"github.com/patrickwarner/webapp/internal/health"
	"github.com/patrickwarner/webapp/internal/observability"
)

// newSQLiteServer wires the router to a recorder backed by a real SQLite
// file so record counts can be checked end to end.
func newSQLiteServer(t *testing.T) (*Server, *db.SQLite) {
	t.Helper()
	store, err := db.NewSQLite(db.WithPath(filepath.Join(t.TempDir(), "webapp.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := zaptest.NewLogger(t)
	metrics := observability.NewNoOpRegistry()
	recorder := health.NewRecorder(store, db.BackendSQLite, logger, metrics)
	return NewServer(logger, recorder, metrics), store
}

func countChecks(t *testing.T, store db.HealthStore) int64 {
	t.Helper()
	n, err := store.CountHealthChecks(context.Background())
	require.NoError(t, err)
	return n
}

func TestHealthzIntegration_CountRecords(t *testing.T) {
	srv, store := newSQLiteServer(t)
	require.NoError(t, store.DeleteHealthChecks(context.Background()))

	before := countChecks(t, store)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assertStandardHeaders(t, rec)

	assert.Equal(t, before+1, countChecks(t, store))
}

func TestHealthzIntegration_RejectedRequestsWriteNothing(t *testing.T) {
	srv, store := newSQLiteServer(t)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/healthz?query=query", nil),
		httptest.NewRequest(http.MethodGet, "/healthz", strings.NewReader(`{"query":"query"}`)),
		httptest.NewRequest(http.MethodPost, "/healthz", nil),
		httptest.NewRequest(http.MethodPut, "/healthz", nil),
		httptest.NewRequest(http.MethodPatch, "/healthz", nil),
		httptest.NewRequest(http.MethodDelete, "/healthz", nil),
		httptest.NewRequest(http.MethodHead, "/healthz", nil),
		httptest.NewRequest(http.MethodOptions, "/healthz", nil),
	}
	for _, req := range requests {
		rec := serve(t, srv, req)
		assert.Contains(t, []int{http.StatusBadRequest, http.StatusMethodNotAllowed}, rec.Code, "%s %s", req.Method, req.URL)
		assertStandardHeaders(t, rec)
	}
	assert.Zero(t, countChecks(t, store))
}

func TestHealthzIntegration_ServiceUnavailable(t *testing.T) {
	srv, store := newSQLiteServer(t)

	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(1), countChecks(t, store))

	require.NoError(t, store.Close())

	rec = serve(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, rec.Body.String())
	assertStandardHeaders(t, rec)

	reopened, err := db.NewSQLite(db.WithPath(store.Path))
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, int64(1), countChecks(t, reopened))
}

func TestHealthzIntegration_Concurrent(t *testing.T) {
	srv, store := newSQLiteServer(t)
	router := NewRouter(srv)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), countChecks(t, store))
}
