package v1

import (
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Match   *handler.MatchHandler
	AuthMw  *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	// Auth routes must be registered before the protected group: the group's
	// middleware is mounted on the same prefix.
	h.Auth.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", h.AuthMw.Middleware())
	h.Profile.RegisterRoutes(protected)
	h.Match.RegisterRoutes(protected)
}
