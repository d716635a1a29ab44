package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/awesomepeople/people/api/internal/pkg/circuitbreaker"
)

// Pinger is anything whose reachability can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is a named backend checked by the health endpoints.
// An optional dependency degrades health but never blocks readiness.
type Dependency struct {
	Name     string
	Pinger   Pinger
	Optional bool
}

// BreakerReporter exposes a circuit breaker's state
type BreakerReporter interface {
	BreakerStats() circuitbreaker.Stats
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	dependencies []Dependency
	breakers     []BreakerReporter
	version      string
	startTime    time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, dependencies ...Dependency) *HealthHandler {
	return &HealthHandler{
		dependencies: dependencies,
		version:      version,
		startTime:    time.Now(),
	}
}

// WithBreaker adds a circuit breaker to the health report
func (h *HealthHandler) WithBreaker(b BreakerReporter) *HealthHandler {
	h.breakers = append(h.breakers, b)
	return h
}

// HealthStatus represents health check status
type HealthStatus struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]string      `json:"checks"`
	Breakers  []circuitbreaker.Stats `json:"breakers,omitempty"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	for _, dep := range h.dependencies {
		if err := dep.Pinger.Ping(ctx); err != nil {
			status.Checks[dep.Name] = "unhealthy: " + err.Error()
			if dep.Optional {
				if status.Status == "healthy" {
					status.Status = "degraded"
				}
			} else {
				status.Status = "unhealthy"
			}
			continue
		}
		status.Checks[dep.Name] = "healthy"
	}

	for _, b := range h.breakers {
		stats := b.BreakerStats()
		status.Breakers = append(status.Breakers, stats)
		if stats.State != circuitbreaker.StateClosed.String() && status.Status == "healthy" {
			status.Status = "degraded"
		}
	}

	statusCode := fiber.StatusOK
	if status.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(status)
}

// Liveness handles GET /livez - basic liveness probe
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// Readiness handles GET /readyz - readiness probe
func (h *HealthHandler) Readiness(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	for _, dep := range h.dependencies {
		if dep.Optional {
			continue
		}
		if err := dep.Pinger.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
				"reason": dep.Name + " unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

// Version handles GET /version
func (h *HealthHandler) Version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": h.version,
		"uptime":  time.Since(h.startTime).String(),
	})
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/healthz", h.Health)
	app.Get("/livez", h.Liveness)
	app.Get("/live", h.Liveness)
	app.Get("/readyz", h.Readiness)
	app.Get("/ready", h.Readiness)
	app.Get("/version", h.Version)
}
