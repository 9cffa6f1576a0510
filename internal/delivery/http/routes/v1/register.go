package v1

import (
	"skill-sync-resume/internal/delivery/http/handler"
	"skill-sync-resume/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Resume *handler.ResumeHandler
	Match  *handler.MatchHandler
	Skill  *handler.SkillHandler
}

// Register mounts every v1 route behind the bearer token check.
func Register(r fiber.Router, authMw *middleware.AuthMiddleware, h Handlers) {
	if r == nil || authMw == nil {
		return
	}

	protected := r.Group("", authMw.Middleware())

	if h.Resume != nil {
		h.Resume.RegisterRoutes(protected)
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(protected)
	}
	if h.Skill != nil {
		h.Skill.RegisterRoutes(protected)
	}
}
