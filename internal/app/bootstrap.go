package app

import (
	"fmt"
	"log"
	"strings"

	"skill-swap/internal/config"
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/delivery/http/routes"
	v1 "skill-swap/internal/delivery/http/routes/v1"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init container: %w", err)
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		ws.NewHandler(c.Hub, c.Config.App.WSAllowedOrigins, c.Logger),
		v1.Handlers{
			Auth:    handler.NewAuthHandler(c.Auth),
			Profile: handler.NewProfileHandler(c.Profile),
			Match:   handler.NewMatchHandler(c.Matching),
			AuthMw:  middleware.NewAuthMiddleware(c.JWT),
		},
	)
	registry.Register(app)
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
