// Package metrics provides operational metrics tracking for BrandSnap.
// Counters cover generation outcomes, provider calls, and consultation turns.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks operational metrics for the brand generator.
// All fields are thread-safe for concurrent access.
type Metrics struct {
	// Generation metrics
	Generations   atomic.Int64
	AISuccesses   atomic.Int64
	Fallbacks     atomic.Int64
	Regenerations atomic.Int64

	// Provider metrics
	ProviderErrors   atomic.Int64
	ImageRetries     atomic.Int64
	CredentialChecks atomic.Int64

	// Consultant metrics
	ConsultTurns    atomic.Int64
	ConsultSessions atomic.Int64

	// Timing metrics
	startTime       time.Time
	lastGeneration  atomic.Value // time.Time
	avgGenLatencyNs atomic.Int64
	latencyCount    atomic.Int64

	mu sync.RWMutex
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	Timestamp        time.Time `json:"timestamp"`
	Uptime           string    `json:"uptime"`
	Generations      int64     `json:"generations"`
	AISuccesses      int64     `json:"ai_successes"`
	Fallbacks        int64     `json:"fallbacks"`
	Regenerations    int64     `json:"regenerations"`
	ProviderErrors   int64     `json:"provider_errors"`
	ImageRetries     int64     `json:"image_retries"`
	CredentialChecks int64     `json:"credential_checks"`
	ConsultTurns     int64     `json:"consult_turns"`
	ConsultSessions  int64     `json:"consult_sessions"`
	AvgGenLatencyMs  float64   `json:"avg_gen_latency_ms"`
	LastGeneration   string    `json:"last_generation,omitempty"`
}

// NewMetrics creates a new Metrics instance with the start time set to now.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// RecordGenLatency records a single generation latency and updates the
// running average.
func (m *Metrics) RecordGenLatency(d time.Duration) {
	ns := d.Nanoseconds()
	count := m.latencyCount.Add(1)

	// Running average: newAvg = oldAvg + (newValue - oldAvg) / count
	// Use a CAS loop for atomic update of the average.
	for {
		oldAvg := m.avgGenLatencyNs.Load()
		newAvg := oldAvg + (ns-oldAvg)/count
		if m.avgGenLatencyNs.CompareAndSwap(oldAvg, newAvg) {
			break
		}
		// Reload count in case it changed.
		count = m.latencyCount.Load()
		if count == 0 {
			count = 1
		}
	}
}

// RecordGeneration records the time of the last completed generation.
func (m *Metrics) RecordGeneration() {
	m.lastGeneration.Store(time.Now())
}

// Uptime returns the duration since the metrics instance was created.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}

// AvgGenLatency returns the average recorded generation latency.
// Returns 0 if no latency has been recorded.
func (m *Metrics) AvgGenLatency() time.Duration {
	return time.Duration(m.avgGenLatencyNs.Load())
}

// TakeSnapshot returns a point-in-time copy of all metrics.
func (m *Metrics) TakeSnapshot() Snapshot {
	snap := Snapshot{
		Timestamp:        time.Now(),
		Uptime:           m.Uptime().Round(time.Millisecond).String(),
		Generations:      m.Generations.Load(),
		AISuccesses:      m.AISuccesses.Load(),
		Fallbacks:        m.Fallbacks.Load(),
		Regenerations:    m.Regenerations.Load(),
		ProviderErrors:   m.ProviderErrors.Load(),
		ImageRetries:     m.ImageRetries.Load(),
		CredentialChecks: m.CredentialChecks.Load(),
		ConsultTurns:     m.ConsultTurns.Load(),
		ConsultSessions:  m.ConsultSessions.Load(),
		AvgGenLatencyMs:  float64(m.avgGenLatencyNs.Load()) / float64(time.Millisecond),
	}

	if v := m.lastGeneration.Load(); v != nil {
		if t, ok := v.(time.Time); ok && !t.IsZero() {
			snap.LastGeneration = t.Format(time.RFC3339)
		}
	}

	return snap
}

// ToJSON returns a JSON-encoded representation of the current metrics snapshot.
func (m *Metrics) ToJSON() ([]byte, error) {
	snap := m.TakeSnapshot()
	return json.Marshal(snap)
}

// Reset resets all metric counters to zero while preserving nothing but a
// fresh start time.
func (m *Metrics) Reset() {
	m.Generations.Store(0)
	m.AISuccesses.Store(0)
	m.Fallbacks.Store(0)
	m.Regenerations.Store(0)
	m.ProviderErrors.Store(0)
	m.ImageRetries.Store(0)
	m.CredentialChecks.Store(0)
	m.ConsultTurns.Store(0)
	m.ConsultSessions.Store(0)
	m.avgGenLatencyNs.Store(0)
	m.latencyCount.Store(0)

	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}
