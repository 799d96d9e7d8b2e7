package api

import (
	"sync"

	"github.com/gorilla/websocket"
)

// connWithMutex wraps a WebSocket connection with its own mutex for thread-safe writes.
type connWithMutex struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub tracks WebSocket clients for replies and change broadcasts.
type Hub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]*connWithMutex
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]*connWithMutex),
	}
}

// Add adds a connection to the hub.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn] = &connWithMutex{conn: conn}
}

// Remove removes a connection from the hub.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, conn)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast sends a message to all connected clients. Clients that fail the
// write are dropped.
func (h *Hub) Broadcast(message any) {
	h.mu.RLock()
	conns := make([]*connWithMutex, 0, len(h.connections))
	for _, cwm := range h.connections {
		conns = append(conns, cwm)
	}
	h.mu.RUnlock()

	for _, cwm := range conns {
		cwm.mu.Lock()
		err := cwm.conn.WriteJSON(message)
		cwm.mu.Unlock()

		if err != nil {
			h.Remove(cwm.conn)
			cwm.conn.Close()
		}
	}
}

// WriteJSON writes to a single connection, serialized with broadcasts.
func (h *Hub) WriteJSON(conn *websocket.Conn, message any) error {
	h.mu.RLock()
	cwm, exists := h.connections[conn]
	h.mu.RUnlock()

	if !exists {
		return conn.WriteJSON(message)
	}

	cwm.mu.Lock()
	defer cwm.mu.Unlock()
	return cwm.conn.WriteJSON(message)
}

// CloseAll closes every connection and empties the hub.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.connections {
		conn.Close()
		delete(h.connections, conn)
	}
}
