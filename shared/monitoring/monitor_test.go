package monitoring

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMonitorHealth(t *testing.T) {
	m := NewMonitor()

	if !m.IsHealthy() {
		t.Error("monitor should be healthy before any run")
	}

	m.RecordSuccess("found 5 videos", time.Second)
	if !m.IsHealthy() {
		t.Error("monitor should be healthy after a successful run")
	}
	if !strings.Contains(m.StatusSummary(), "found 5 videos") {
		t.Errorf("StatusSummary() = %q, want the run summary included", m.StatusSummary())
	}

	m.RecordFailure(errors.New("quota exceeded"), time.Second)
	if m.IsHealthy() {
		t.Error("monitor should be unhealthy after a failed run")
	}
	if !strings.Contains(m.StatusSummary(), "failed") {
		t.Errorf("StatusSummary() = %q, want failure state", m.StatusSummary())
	}
}
