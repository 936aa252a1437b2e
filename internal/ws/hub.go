package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the open websocket connections and fans game state
// updates out to all of them. Broadcasts come from arbitrary request
// goroutines, so each connection carries its own write mutex:
// gorilla/websocket forbids concurrent writers on one connection.
type Hub struct {
	mu sync.RWMutex

	conns map[*websocket.Conn]*sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) Register(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = &sync.Mutex{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

func (h *Hub) Online() int {
	h.mu.RLock()
	n := len(h.conns)
	h.mu.RUnlock()
	return n
}

func (h *Hub) SendJSON(c *websocket.Conn, v any) error {
	h.mu.RLock()
	writeMu, ok := h.conns[c]
	h.mu.RUnlock()

	if !ok {
		return c.WriteJSON(v)
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	return c.WriteJSON(v)
}

// BroadcastJSON marshals v once and writes it to every connection.
// Write errors are ignored, the reader goroutine drops dead conns.
func (h *Hub) BroadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	type target struct {
		conn    *websocket.Conn
		writeMu *sync.Mutex
	}

	h.mu.RLock()
	targets := make([]target, 0, len(h.conns))
	for c, writeMu := range h.conns {
		targets = append(targets, target{conn: c, writeMu: writeMu})
	}
	h.mu.RUnlock()

	for _, t := range targets {
		t.writeMu.Lock()
		_ = t.conn.WriteMessage(websocket.TextMessage, b)
		t.writeMu.Unlock()
	}
}
