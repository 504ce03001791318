package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Monitor records the outcome of analysis runs for the health endpoint.
type Monitor struct {
	mu             sync.RWMutex
	lastRunSuccess bool
	lastRunTime    time.Time
	lastSummary    string
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.lastSummary = summary
	m.mu.Unlock()

	log.Printf("Run completed successfully - %s (took %v)", summary, duration)
}

func (m *Monitor) RecordFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = false
	m.lastRunTime = time.Now()
	m.lastSummary = err.Error()
	m.mu.Unlock()

	log.Printf("RUN FAILED: %s (took %v)", err.Error(), duration)
}

// IsHealthy is true before the first run and after any successful run.
func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return true
	}
	return m.lastRunSuccess
}

func (m *Monitor) StatusSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return "no runs yet"
	}
	state := "ok"
	if !m.lastRunSuccess {
		state = "failed"
	}
	return fmt.Sprintf("last run %s at %s: %s", state, m.lastRunTime.Format(time.RFC3339), m.lastSummary)
}
