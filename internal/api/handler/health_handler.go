package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const probeTimeout = 3 * time.Second

// Dependency is a backing service checked by the health probes.
type Dependency interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler handles the liveness and readiness probes.
type HealthHandler struct {
	database Dependency
	deps     []Dependency
	now      func() time.Time
}

// NewHealthHandler checks database on /health and every dependency
// (database included) on /health/ready.
func NewHealthHandler(database Dependency, others ...Dependency) *HealthHandler {
	deps := append([]Dependency{database}, others...)
	return &HealthHandler{database: database, deps: deps, now: time.Now}
}

type livenessResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Liveness handles GET /health. It always answers 200 and reports whether
// the database answered a ping.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  livenessResponse
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	database := "connected"
	if err := h.database.Ping(ctx); err != nil {
		database = "disconnected"
	}

	return c.JSON(http.StatusOK, livenessResponse{
		Status:    "OK",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Database:  database,
	})
}

// Readiness handles GET /health/ready.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps))
	healthy := true
	for _, d := range h.deps {
		if err := d.Ping(ctx); err != nil {
			deps[d.Name()] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[d.Name()] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
