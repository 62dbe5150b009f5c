package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"filedrop/internal/storage"
)

// rootHandler answers the liveness probe on "/" with a bare 200 and acts
// as the fallback for every path no other route claimed.
func (cfg Config) rootHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

// HealthStatus represents the overall health of the system
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentStatus represents the health of an individual component
type ComponentStatus string

const (
	ComponentStatusUp       ComponentStatus = "up"
	ComponentStatusDown     ComponentStatus = "down"
	ComponentStatusDegraded ComponentStatus = "degraded"
)

// Health is the /healthz response body.
type Health struct {
	Status     HealthStatus               `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents the health of a single system component
type ComponentHealth struct {
	Status    ComponentStatus `json:"status"`
	Message   string          `json:"message,omitempty"`
	LatencyMs float64         `json:"latency_ms,omitempty"`
}

// healthHandler serves GET /healthz with a per-component health report.
// The storage backend is the only stateful dependency, so it is the only
// component probed.
func (cfg Config) healthHandler(store storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		health := Health{
			Timestamp:  time.Now().UTC(),
			Version:    cfg.Build.Version,
			Components: map[string]ComponentHealth{},
		}

		storageHealth := checkStorageHealth(r.Context(), store)
		health.Components["storage"] = storageHealth

		health.Status = HealthStatusHealthy
		statusCode := http.StatusOK
		switch storageHealth.Status {
		case ComponentStatusDown:
			health.Status = HealthStatusUnhealthy
			statusCode = http.StatusServiceUnavailable
		case ComponentStatusDegraded:
			// Still return 200 for degraded.
			health.Status = HealthStatusDegraded
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(health)
	})
}

// checkStorageHealth probes the backend with a bounded listing call.
func checkStorageHealth(ctx context.Context, store storage.Store) ComponentHealth {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := store.List(ctx); err != nil {
		return ComponentHealth{
			Status:  ComponentStatusDown,
			Message: "storage enumeration failed: " + err.Error(),
		}
	}

	latency := time.Since(start).Milliseconds()

	status := ComponentStatusUp
	message := "storage healthy"
	if latency > 1000 {
		status = ComponentStatusDegraded
		message = "storage latency high"
	}

	return ComponentHealth{
		Status:    status,
		Message:   message,
		LatencyMs: float64(latency),
	}
}
