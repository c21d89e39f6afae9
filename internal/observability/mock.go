package observability

import (
	"sync"
	"time"
)

// MockMetricsRegistry records calls so tests can assert on them.
type MockMetricsRegistry struct {
	mu           sync.Mutex
	Requests     map[string]int
	HealthChecks map[string]int
	StoreWrites  map[string]int
}

// NewMockMetricsRegistry creates an empty MockMetricsRegistry.
func NewMockMetricsRegistry() *MockMetricsRegistry {
	return &MockMetricsRegistry{
		Requests:     make(map[string]int),
		HealthChecks: make(map[string]int),
		StoreWrites:  make(map[string]int),
	}
}

func (m *MockMetricsRegistry) IncrementRequests(endpoint, method, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint+" "+method+" "+status]++
}

func (m *MockMetricsRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}

func (m *MockMetricsRegistry) IncrementHealthChecks(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HealthChecks[outcome]++
}

func (m *MockMetricsRegistry) RecordStoreLatency(backend string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreWrites[backend]++
}

// RequestCount returns how often a request with the given labels was counted.
func (m *MockMetricsRegistry) RequestCount(endpoint, method, status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Requests[endpoint+" "+method+" "+status]
}

// HealthCheckCount returns how often the given outcome was counted.
func (m *MockMetricsRegistry) HealthCheckCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.HealthChecks[outcome]
}
