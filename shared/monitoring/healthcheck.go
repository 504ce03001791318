package monitoring

import (
	"fmt"
	"log"
	"net/http"
)

// HealthServer exposes /health and /status for scheduled deployments.
type HealthServer struct {
	monitor *Monitor
	port    int
}

func NewHealthServer(monitor *Monitor, port int) *HealthServer {
	if port <= 0 {
		port = 8080
	}
	return &HealthServer{monitor: monitor, port: port}
}

func (h *HealthServer) Start() {
	http.HandleFunc("/health", h.healthHandler)
	http.HandleFunc("/status", h.statusHandler)

	log.Printf("Health check server starting on port %d", h.port)
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", h.port), nil); err != nil {
			log.Printf("Health server error: %v", err)
		}
	}()
}

func (h *HealthServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	if h.monitor.IsHealthy() {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK - %s", h.monitor.StatusSummary())
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "Unhealthy - %s", h.monitor.StatusSummary())
	}
}

func (h *HealthServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, h.monitor.StatusSummary())
}
