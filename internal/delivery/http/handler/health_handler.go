package handler

import (
	"context"
	"time"

	"skill-swap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

type healthResponse struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports 503 only when the database is down. A missing cache degrades
// latency, not correctness.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	out := healthResponse{Database: "up", Cache: "up"}
	status := fiber.StatusOK

	if h.db == nil || h.db.Ping(ctx) != nil {
		out.Database = "down"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		out.Cache = "bypassed"
	}

	return response.Success(c, status, "", out)
}
