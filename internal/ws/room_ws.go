package ws

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"droproom/internal/observability"
	"droproom/internal/store"
)

// RoomWebSocketHandler upgrades subscribers onto a room's live feed.
type RoomWebSocketHandler struct {
	hub   *Hub
	store store.Store
}

// NewRoomWebSocketHandler constructs a RoomWebSocketHandler.
func NewRoomWebSocketHandler(hub *Hub, st store.Store) *RoomWebSocketHandler {
	return &RoomWebSocketHandler{hub: hub, store: st}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle verifies the room is live, upgrades the connection and keeps it
// registered until the peer goes away. Expiry is not pushed to clients;
// they discover it on their next poll, same as the original polling flow.
func (h *RoomWebSocketHandler) Handle(c *gin.Context) {
	roomID := c.Param("room_id")

	ctx, span := otel.Tracer("droproom/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	exists, err := h.store.RoomExists(c.Request.Context(), roomID)
	if err != nil && !errors.Is(err, store.ErrRoomNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check room"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		ConnectedAt: time.Now(),
	}
	h.hub.AddClient(roomID, conn, info)
	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")

	go func() {
		defer func() {
			h.hub.RemoveClient(roomID, conn)
			observability.DecWSActive()
			observability.IncWSEvent("ws_disconnect")
			conn.Close()
		}()
		for {
			// Subscribers never send application data; the read loop only
			// notices the close.
			if _, _, err := conn.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					observability.IncWSEvent("ws_error")
				}
				return
			}
		}
	}()
}

func newConnID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
