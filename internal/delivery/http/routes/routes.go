package routes

import (
	"skill-swap/internal/delivery/http/handler"
	v1 "skill-swap/internal/delivery/http/routes/v1"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, v1Handlers v1.Handlers) *Registry {
	return &Registry{health: health, ws: wsHandler, v1: v1Handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
	r.ws.RegisterRoutes(app.Group("/ws"))
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}
