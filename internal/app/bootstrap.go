package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skill-sync-resume/internal/config"
	"skill-sync-resume/internal/database/migration"
	"skill-sync-resume/internal/delivery/http/handler"
	"skill-sync-resume/internal/delivery/http/middleware"
	"skill-sync-resume/internal/delivery/http/routes"
	v1 "skill-sync-resume/internal/delivery/http/routes/v1"
	"skill-sync-resume/migrations"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// multipart framing on top of the file itself
const formOverheadBytes = 1 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: int(c.Config.Upload.MaxBytes) + formOverheadBytes,
	})

	registerGlobalMiddleware(f, c.Log)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects the stores, applies pending migrations and builds the
// HTTP app. The returned cleanup closes every store.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	r := migration.Runner{FS: migrations.FS, Log: c.Log}
	if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	checks := []handler.HealthCheck{{Name: "postgres", Pinger: c.DB}}
	if c.Redis != nil {
		checks = append(checks, handler.HealthCheck{Name: "redis", Pinger: c.Redis, Optional: true})
	}

	routes.NewRegistry(
		handler.NewHealthHandler(checks...),
		middleware.NewAuthMiddleware(c.JWT),
		v1.Handlers{
			Resume: handler.NewResumeHandler(c.Resumes, c.Config.Upload.MaxBytes),
			Match:  handler.NewMatchHandler(c.Matching),
			Skill:  handler.NewSkillHandler(c.Skills),
		},
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
