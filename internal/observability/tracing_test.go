package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", samplerFor(1.5).Description())
	assert.Equal(t, "AlwaysOffSampler", samplerFor(0).Description())
	assert.True(t, strings.HasPrefix(samplerFor(0.25).Description(), "TraceIDRatioBased"))
}

func TestEnvironment(t *testing.T) {
	t.Setenv("ENV", "Staging")
	assert.Equal(t, "staging", environment())
	t.Setenv("ENV", "")
	assert.Equal(t, "production", environment())
}
