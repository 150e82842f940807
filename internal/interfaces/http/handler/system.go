package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// DependencyCheck probes one backing service for the readiness endpoint
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// SystemHandler serves liveness and readiness probes
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	checks    []DependencyCheck
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string, checks ...DependencyCheck) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		checks:    checks,
	}
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health handles GET /health. It never touches dependencies.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// ReadyResponse reports the state of every dependency
type ReadyResponse struct {
	Ready        bool              `json:"ready"`
	Dependencies map[string]string `json:"dependencies"`
}

// Ready handles GET /ready and answers 503 when any dependency fails
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	resp := ReadyResponse{Ready: true, Dependencies: make(map[string]string, len(h.checks))}
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			_ = c.Error(err)
			resp.Ready = false
			resp.Dependencies[check.Name] = "unavailable"
			continue
		}
		resp.Dependencies[check.Name] = "ok"
	}

	if !resp.Ready {
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp})
		return
	}
	h.Success(c, resp)
}
