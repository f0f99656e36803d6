package ws

import (
	"context"
	"log"
	"sync"
)

// Hub fans profile events out to every connected websocket client. Run owns
// membership changes; the mutex only guards reads from ClientCount. Once Run
// returns, done is closed and Register/Unregister stop blocking.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stop()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("WS connected | total_clients=%d", total)

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than block every other client.
					h.remove(client)
				}
			}
			h.logf("WS broadcast | clients=%d", len(snapshot))
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logf("WS disconnected | total_clients=%d", total)
}

// stop closes done, then every known client, including ones whose registration
// was still queued.
func (h *Hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		default:
			return
		}
	}
}

// Register queues client for membership. It reports false once the hub has
// stopped; the caller then owns the client and must close its connection.
func (h *Hub) Register(client *Client) bool {
	if h == nil || client == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logf("WS broadcast dropped | reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
