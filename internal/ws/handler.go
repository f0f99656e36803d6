package ws

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// Handler upgrades /ws/profiles requests and hands the connection to the hub.
// The stream is read-only for clients and carries user ids only.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHandler accepts browser connections from allowedOrigins only. An empty list
// allows any origin. Requests without an Origin header (non-browser clients) are
// always accepted.
func NewHandler(hub *Hub, allowedOrigins []string, logger *log.Logger) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = normalizeOrigin(o); o != "" {
			allowed[o] = struct{}{}
		}
	}

	h := &Handler{hub: hub, logger: logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(allowed, r.Header.Get("Origin"))
		},
	}
	return h
}

func originAllowed(allowed map[string]struct{}, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	origin = normalizeOrigin(origin)
	if origin == "" {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/profiles", h.HandleProfilesWS)
}

func (h *Handler) HandleProfilesWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	upgrade := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the 4xx.
			h.logf("WS upgrade rejected | origin=%s error=%v", r.Header.Get("Origin"), err)
			return
		}

		client := NewClient(h.hub, conn)
		if !h.hub.Register(client) {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			_ = conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	})

	return upgrade(c)
}

func (h *Handler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
