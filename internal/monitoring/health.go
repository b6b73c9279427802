package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// maxHealthErrors bounds the error history reported by /health
const maxHealthErrors = 10

// HealthChecker reports whether scheduled analyses are still succeeding
type HealthChecker struct {
	mu         sync.RWMutex
	startTime  time.Time
	lastRun    time.Time
	lastSignal string
	maxAge     time.Duration
	errors     []string
	now        func() time.Time
}

type HealthStatus struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	LastRun    time.Time `json:"last_run"`
	LastSignal string    `json:"last_signal,omitempty"`
	Uptime     string    `json:"uptime"`
	Errors     []string  `json:"errors,omitempty"`
}

// NewHealthChecker creates a checker that reports degraded once no run has
// succeeded within maxAge. A zero maxAge disables the staleness check.
func NewHealthChecker(maxAge time.Duration) *HealthChecker {
	return &HealthChecker{
		startTime: time.Now(),
		maxAge:    maxAge,
		errors:    make([]string, 0),
		now:       time.Now,
	}
}

// RecordSuccess marks a successful run and clears the error history
func (h *HealthChecker) RecordSuccess(signal string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastRun = h.now()
	h.lastSignal = signal
	h.errors = h.errors[:0]
}

// RecordFailure appends err to the error history
func (h *HealthChecker) RecordFailure(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errors = append(h.errors, err.Error())
	if len(h.errors) > maxHealthErrors {
		h.errors = h.errors[len(h.errors)-maxHealthErrors:]
	}
}

// Status returns the current health snapshot
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	now := h.now()
	status := "healthy"
	if h.maxAge > 0 && (h.lastRun.IsZero() || now.Sub(h.lastRun) > h.maxAge) {
		status = "degraded"
	}
	if len(h.errors) > 0 {
		status = "unhealthy"
	}

	errs := make([]string, len(h.errors))
	copy(errs, h.errors)

	return HealthStatus{
		Status:     status,
		Timestamp:  now,
		LastRun:    h.lastRun,
		LastSignal: h.lastSignal,
		Uptime:     now.Sub(h.startTime).String(),
		Errors:     errs,
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.Status()

	w.Header().Set("Content-Type", "application/json")
	switch health.Status {
	case "degraded":
		w.WriteHeader(http.StatusServiceUnavailable)
	case "unhealthy":
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(health)
}

// NewServeMux exposes /metrics and /health
func NewServeMux(health *HealthChecker) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	if health != nil {
		mux.Handle("/health", health)
	}
	return mux
}
