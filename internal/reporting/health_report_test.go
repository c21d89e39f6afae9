package reporting

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounter struct {
	n   int64
	err error
}

func (s stubCounter) CountHealthChecks(ctx context.Context) (int64, error) {
	return s.n, s.err
}

func TestGenerateHealthReport(t *testing.T) {
	before := time.Now().UTC()
	report, err := GenerateHealthReport(context.Background(), stubCounter{n: 42}, "sqlite")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", report.Backend)
	assert.Equal(t, int64(42), report.TotalChecks)
	assert.False(t, report.GeneratedAt.Before(before))

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	assert.Contains(t, buf.String(), "Backend:      sqlite")
	assert.Contains(t, buf.String(), "Total checks: 42")
}

func TestGenerateHealthReportStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	report, err := GenerateHealthReport(context.Background(), stubCounter{err: storeErr}, "postgres")
	assert.Nil(t, report)
	assert.ErrorIs(t, err, storeErr)
}
