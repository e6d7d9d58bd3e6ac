package ws

import (
	"log/slog"
	"sync"

	"github.com/worldsmp/worlds-server/internal/model"
)

// Hub tracks live clients and fans events out to them. It satisfies the
// session engine's Broadcaster interface.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[model.ConnID]*Client
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With(slog.String("component", "hub")),
		clients: make(map[model.ConnID]*Client),
	}
}

// Add registers a client.
func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	h.clients[client.ID()] = client
	h.mu.Unlock()
}

// Remove drops a client. The caller closes it.
func (h *Hub) Remove(id model.ConnID) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

// Get returns the client for a connection id.
func (h *Hub) Get(id model.ConnID) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.clients[id]
	return client, ok
}

// Count returns the number of registered clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast emits an event to every client that has completed the namespace
// handshake, optionally excluding one connection ("" excludes nobody).
func (h *Hub) Broadcast(event model.EventType, payload any, exclude model.ConnID) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for id, client := range h.clients {
		if id == exclude {
			continue
		}
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if client.Connected() {
			client.Emit(event, payload)
		}
	}
}
