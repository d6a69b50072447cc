package ws

import (
	"encoding/json"
	"sync"

	"fanquest/internal/logger"
)

// Hub fans settlement and wheel events out to a profile's connected
// clients. Delivery is best effort: a slow or gone client is dropped, the
// caller never blocks.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.ProfileID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.ProfileID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.ProfileID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.ProfileID)
	}
}

// Notify implements service.Notifier.
func (h *Hub) Notify(profileID int64, event string, payload any) {
	msg, err := json.Marshal(map[string]any{
		"type":    event,
		"payload": payload,
	})
	if err != nil {
		logger.Error("notify marshal failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[profileID] {
		select {
		case c.Send <- msg:
		default:
			// client is backed up, skip it
		}
	}
}

// Connected returns the number of open connections for a profile.
func (h *Hub) Connected(profileID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[profileID])
}
