package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"droproom/internal/middleware"
	"droproom/internal/observability"
	"droproom/internal/store"
	"droproom/internal/telemetry"
	"droproom/internal/ws"
)

// Owner names: 1-50 chars, letters, digits and spaces.
var ownerNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)

// RoomHandler manages room lifecycle endpoints.
type RoomHandler struct {
	store   store.Store
	hub     *ws.Hub
	emitter *telemetry.EventEmitter
}

// NewRoomHandler builds a RoomHandler.
func NewRoomHandler(st store.Store, hub *ws.Hub, emitter *telemetry.EventEmitter) *RoomHandler {
	return &RoomHandler{store: st, hub: hub, emitter: emitter}
}

type createRoomRequest struct {
	OwnerName string `json:"ownerName" binding:"required,max=50"`
}

// createRoomResponse duplicates the id under roomId, which is the field
// clients navigate with.
type createRoomResponse struct {
	RoomID    string `json:"roomId"`
	ID        string `json:"id"`
	OwnerName string `json:"ownerName"`
	CreatedAt int64  `json:"createdAt"`
}

// CreateRoom creates a room and returns it.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !ownerNameRegex.MatchString(req.OwnerName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid characters"})
		return
	}

	room, err := h.store.CreateRoom(c.Request.Context(), req.OwnerName)
	if err != nil {
		if errors.Is(err, store.ErrOwnerNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	observability.IncRoomCreated()
	h.emitter.RoomCreated(c.Request.Context(), middleware.FromContext(c), room.ID, room.CreatedAt)

	c.JSON(http.StatusOK, createRoomResponse{
		RoomID:    room.ID,
		ID:        room.ID,
		OwnerName: room.OwnerName,
		CreatedAt: room.CreatedAt,
	})
}

// GetRoom returns a room if it is present and still live.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID := c.Param("room_id")

	room, err := h.store.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found or has expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get room"})
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room and everything in it. Deleting an absent or
// already-deleted room is a 404, never an error.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID := c.Param("room_id")

	deleted, err := h.store.DeleteRoom(c.Request.Context(), roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found or already deleted"})
		return
	}

	observability.IncRoomDeleted()
	h.emitter.RoomDeleted(c.Request.Context(), middleware.FromContext(c), roomID)
	h.hub.BroadcastRoomDeleted(roomID)

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
