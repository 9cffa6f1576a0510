package handler

import (
	"context"
	"time"

	"skill-sync-resume/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is satisfied by the database pool and the redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck names a dependency. An optional dependency that is down is
// reported but does not fail the check.
type HealthCheck struct {
	Name     string
	Pinger   Pinger
	Optional bool
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	out := make([]HealthCheck, 0, len(checks))
	for _, hc := range checks {
		if hc.Pinger != nil && hc.Name != "" {
			out = append(out, hc)
		}
	}
	return &HealthHandler{checks: out}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	healthy := true
	deps := make(map[string]string, len(h.checks))
	for _, hc := range h.checks {
		if err := hc.Pinger.Ping(ctx); err != nil {
			deps[hc.Name] = "down"
			if !hc.Optional {
				healthy = false
			}
			continue
		}
		deps[hc.Name] = "up"
	}

	if !healthy {
		return response.Error(c, fiber.StatusServiceUnavailable, "degraded", deps)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, deps)
}
