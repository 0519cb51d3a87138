package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/joaointech/Plinko-incinerator/internal/games"
)

// HealthStatus represents the overall health status.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResponse represents a health check response.
type HealthCheckResponse struct {
	Status        HealthStatus           `json:"status"`
	Timestamp     string                 `json:"timestamp"`
	EngineVersion string                 `json:"engine_version"`
	GitCommit     string                 `json:"git_commit,omitempty"`
	BuildTime     string                 `json:"build_time,omitempty"`
	Uptime        string                 `json:"uptime"`
	Checks        map[string]HealthCheck `json:"checks"`
	System        SystemInfo             `json:"system"`
	RequestID     string                 `json:"request_id,omitempty"`
}

// HealthCheck represents an individual health check.
type HealthCheck struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// SystemInfo contains system information.
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
}

func (s *Server) runChecks() (HealthStatus, map[string]HealthCheck) {
	status := HealthStatusHealthy
	checks := make(map[string]HealthCheck)

	if len(games.ListGames()) == 0 {
		status = HealthStatusUnhealthy
		checks["games"] = HealthCheck{Status: HealthStatusUnhealthy, Message: "no games registered"}
	} else {
		checks["games"] = HealthCheck{Status: HealthStatusHealthy}
	}

	if s.db == nil {
		checks["store"] = HealthCheck{Status: HealthStatusDegraded, Message: "audit log disabled"}
		if status == HealthStatusHealthy {
			status = HealthStatusDegraded
		}
	} else if err := s.db.Ping(); err != nil {
		checks["store"] = HealthCheck{Status: HealthStatusUnhealthy, Message: err.Error()}
		status = HealthStatusUnhealthy
	} else {
		checks["store"] = HealthCheck{Status: HealthStatusHealthy}
	}

	return status, checks
}

// handleHealthCheck serves the full health report.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status, checks := s.runChecks()

	httpStatus := http.StatusOK
	if status == HealthStatusUnhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	s.writeJSON(w, httpStatus, HealthCheckResponse{
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineVersion: EngineVersion,
		GitCommit:     GitCommit,
		BuildTime:     BuildTime,
		Uptime:        time.Since(s.startTime).Round(time.Second).String(),
		Checks:        checks,
		System: SystemInfo{
			GoVersion:     runtime.Version(),
			NumGoroutines: runtime.NumGoroutine(),
			NumCPU:        runtime.NumCPU(),
		},
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// handleLiveness reports process liveness only.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReadiness reports whether the server can take traffic.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	status, checks := s.runChecks()

	httpStatus := http.StatusOK
	if status == HealthStatusUnhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	s.writeJSON(w, httpStatus, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
