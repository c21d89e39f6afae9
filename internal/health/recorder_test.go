package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/patrickwarner/webapp/internal/observability"
)

type fakeStore struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (f *fakeStore) InsertHealthCheck(ctx context.Context, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, at)
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.calls)), nil
}

func TestRecordCheckStampsCurrentTime(t *testing.T) {
	store := &fakeStore{}
	metrics := observability.NewMockMetricsRegistry()
	rec := NewRecorder(store, "fake", zaptest.NewLogger(t), metrics)

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	rec.now = func() time.Time { return fixed }

	require.NoError(t, rec.RecordCheck(context.Background()))

	require.Len(t, store.calls, 1)
	assert.True(t, store.calls[0].Equal(fixed))
	assert.Equal(t, time.UTC, store.calls[0].Location())
	assert.Equal(t, 1, metrics.HealthCheckCount(observability.OutcomeRecorded))
	assert.Equal(t, 0, metrics.HealthCheckCount(observability.OutcomeFailed))
}

func TestRecordCheckSingleAttemptOnFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &fakeStore{err: storeErr}
	metrics := observability.NewMockMetricsRegistry()
	rec := NewRecorder(store, "fake", zaptest.NewLogger(t), metrics)

	err := rec.RecordCheck(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Len(t, store.calls, 1, "no retries")
	assert.Equal(t, 1, metrics.HealthCheckCount(observability.OutcomeFailed))
}

func TestRecordCheckConcurrent(t *testing.T) {
	store := &fakeStore{}
	rec := NewRecorder(store, "fake", nil, nil)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rec.RecordCheck(context.Background()))
		}()
	}
	wg.Wait()
	assert.Len(t, store.calls, n)
}
