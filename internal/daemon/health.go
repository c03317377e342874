package daemon

import (
	"runtime"
	"sync"
	"time"
)

// HealthStatus represents the current health state of the serve loop.
type HealthStatus struct {
	Status        string            `json:"status"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	MemoryMB      float64           `json:"memory_mb"`
	PendingTabs   int               `json:"pending_tabs"`
	LastCheck     time.Time         `json:"last_check"`
	Version       string            `json:"version,omitempty"`
	Goroutines    int               `json:"goroutines"`
	Failing       map[string]string `json:"failing,omitempty"`
}

// HealthChecker provides health status for the serve loop.
type HealthChecker struct {
	mu           sync.RWMutex
	startTime    time.Time
	lastCheck    time.Time
	pending      func() int
	version      string
	customChecks map[string]func() error
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		startTime:    time.Now(),
		version:      version,
		customChecks: make(map[string]func() error),
	}
}

// SetPendingFunc sets the gauge reporting tabs with a redirect in flight.
func (h *HealthChecker) SetPendingFunc(fn func() int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = fn
}

// Check performs a health check and returns the status.
func (h *HealthChecker) Check() *HealthStatus {
	h.mu.Lock()
	h.lastCheck = time.Now()
	h.mu.Unlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.mu.RLock()
	defer h.mu.RUnlock()

	status := &HealthStatus{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		MemoryMB:      float64(memStats.Alloc) / 1024 / 1024,
		LastCheck:     h.lastCheck,
		Version:       h.version,
		Goroutines:    runtime.NumGoroutine(),
	}
	if h.pending != nil {
		status.PendingTabs = h.pending()
	}
	for name, check := range h.customChecks {
		if err := check(); err != nil {
			if status.Failing == nil {
				status.Failing = make(map[string]string)
			}
			status.Failing[name] = err.Error()
			status.Status = "unhealthy"
		}
	}
	return status
}

// AddCheck adds a custom health check function.
func (h *HealthChecker) AddCheck(name string, check func() error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.customChecks[name] = check
}

