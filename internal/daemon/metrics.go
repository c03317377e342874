package daemon

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/manav03panchal/tabguard/internal/redirect"
)

// Metrics tracks serve loop counters.
type Metrics struct {
	// Counters
	eventsTotal     atomic.Int64
	redirectsTotal  atomic.Int64
	suppressedTotal atomic.Int64
	errorsTotal     atomic.Int64

	// Gauges with mutex for complex types
	mu             sync.RWMutex
	lastRedirectAt time.Time
	lastError      string
	lastErrorAt    time.Time

	// Breakdowns
	decisionsByReason map[string]int64
	errorsByCategory  map[string]int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		decisionsByReason: make(map[string]int64),
		errorsByCategory:  make(map[string]int64),
	}
}

// MetricsSnapshot represents a point-in-time view of metrics.
type MetricsSnapshot struct {
	EventsTotal       int64            `json:"events_total"`
	RedirectsTotal    int64            `json:"redirects_total"`
	SuppressedTotal   int64            `json:"suppressed_total"`
	ErrorsTotal       int64            `json:"errors_total"`
	LastRedirectAt    *time.Time       `json:"last_redirect_at,omitempty"`
	LastError         string           `json:"last_error,omitempty"`
	LastErrorAt       *time.Time       `json:"last_error_at,omitempty"`
	DecisionsByReason map[string]int64 `json:"decisions_by_reason,omitempty"`
	ErrorsByCategory  map[string]int64 `json:"errors_by_category,omitempty"`
}

// Snapshot returns a copy of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		EventsTotal:       m.eventsTotal.Load(),
		RedirectsTotal:    m.redirectsTotal.Load(),
		SuppressedTotal:   m.suppressedTotal.Load(),
		ErrorsTotal:       m.errorsTotal.Load(),
		LastError:         m.lastError,
		DecisionsByReason: make(map[string]int64, len(m.decisionsByReason)),
		ErrorsByCategory:  make(map[string]int64, len(m.errorsByCategory)),
	}

	if !m.lastRedirectAt.IsZero() {
		at := m.lastRedirectAt
		snap.LastRedirectAt = &at
	}
	if !m.lastErrorAt.IsZero() {
		at := m.lastErrorAt
		snap.LastErrorAt = &at
	}
	for k, v := range m.decisionsByReason {
		snap.DecisionsByReason[k] = v
	}
	for k, v := range m.errorsByCategory {
		snap.ErrorsByCategory[k] = v
	}

	return snap
}

// RecordEvent records one inbound event.
func (m *Metrics) RecordEvent() {
	m.eventsTotal.Add(1)
}

// RecordDecision records the outcome of a navigation.
func (m *Metrics) RecordDecision(d redirect.Decision) {
	switch {
	case d.Redirected:
		m.redirectsTotal.Add(1)
	case d.Reason == redirect.ReasonPending:
		m.suppressedTotal.Add(1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if d.Redirected {
		m.lastRedirectAt = time.Now()
	}
	if d.Reason != "" {
		m.decisionsByReason[string(d.Reason)]++
	}
}

// RecordError records an error with category.
func (m *Metrics) RecordError(category string, err error) {
	m.errorsTotal.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastError = err.Error()
	m.lastErrorAt = time.Now()

	if category != "" {
		m.errorsByCategory[category]++
	}
}

// EventsTotal returns the total events handled.
func (m *Metrics) EventsTotal() int64 {
	return m.eventsTotal.Load()
}

// RedirectsTotal returns the total redirects issued.
func (m *Metrics) RedirectsTotal() int64 {
	return m.redirectsTotal.Load()
}

// SuppressedTotal returns how many redirects the cooldown swallowed.
func (m *Metrics) SuppressedTotal() int64 {
	return m.suppressedTotal.Load()
}

// ErrorsTotal returns the total errors.
func (m *Metrics) ErrorsTotal() int64 {
	return m.errorsTotal.Load()
}

