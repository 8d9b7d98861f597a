package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"droproom/internal/models"
	"droproom/internal/observability"
)

// client pairs a connection with its metadata and a write mutex.
// gorilla/websocket does not support concurrent writers, and broadcasts
// for the same room can run from different request goroutines.
type client struct {
	conn *websocket.Conn
	info ConnInfo
	mu   sync.Mutex
}

func (c *client) write(messageType int, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, payload)
}

// Hub maintains active websocket subscriptions per room. It is purely a
// fan-out optimization on top of polling; the store never depends on it.
type Hub struct {
	rooms map[string]map[*websocket.Conn]*client
	mu    sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*websocket.Conn]*client)}
}

// AddClient registers a websocket connection to a room.
func (h *Hub) AddClient(roomID string, conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*websocket.Conn]*client)
	}
	h.rooms[roomID][conn] = &client{conn: conn, info: info}
}

// RemoveClient removes a websocket connection.
func (h *Hub) RemoveClient(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[roomID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// BroadcastMessage sends a freshly stored message to all room subscribers.
func (h *Hub) BroadcastMessage(roomID string, msg models.Message) {
	h.broadcast(roomID, models.RoomEvent{Type: "message", Message: &msg})
}

// BroadcastRoomDeleted tells subscribers the room is gone.
func (h *Hub) BroadcastRoomDeleted(roomID string) {
	h.broadcast(roomID, models.RoomEvent{Type: "room_deleted", RoomID: roomID})
}

func (h *Hub) broadcast(roomID string, event models.RoomEvent) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomID]))
	for _, c := range h.rooms[roomID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	payload, _ := json.Marshal(event)
	for _, c := range clients {
		if err := c.write(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			c.conn.Close()
			h.RemoveClient(roomID, c.conn)
			observability.IncWSEvent("ws_error")
		}
	}
}

// subscriberCount is used by tests.
func (h *Hub) subscriberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
