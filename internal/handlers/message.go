package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"droproom/internal/middleware"
	"droproom/internal/models"
	"droproom/internal/observability"
	"droproom/internal/store"
	"droproom/internal/telemetry"
	"droproom/internal/ws"
)

const (
	maxTextContent = 1000
	// Non-text content is a data URL; a 1 MB upload encodes to ~1.4 MB.
	maxDataURLContent = 2 << 20
)

// MessageHandler manages the per-room message endpoints.
type MessageHandler struct {
	store   store.Store
	hub     *ws.Hub
	emitter *telemetry.EventEmitter
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(st store.Store, hub *ws.Hub, emitter *telemetry.EventEmitter) *MessageHandler {
	return &MessageHandler{store: st, hub: hub, emitter: emitter}
}

// ListMessages returns the room's full log in insertion order. The short
// cache window keeps pollers from hammering the store.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	roomID := c.Param("room_id")

	msgs, err := h.store.ListMessages(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get messages"})
		return
	}

	c.Header("Cache-Control", "private, max-age=5")
	c.JSON(http.StatusOK, msgs)
}

type postMessageRequest struct {
	Content  string             `json:"content"`
	UserName string             `json:"userName" binding:"required,max=50"`
	Type     models.MessageType `json:"type" binding:"required"`
	FileName string             `json:"fileName"`
	FileSize int64              `json:"fileSize"`
	FileType string             `json:"fileType"`
}

// PostMessage validates the draft and appends it to the room.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	roomID := c.Param("room_id")

	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message type"})
		return
	}
	if req.Type == models.MessageText && len(req.Content) > maxTextContent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message too long"})
		return
	}
	if req.Type != models.MessageText && len(req.Content) > maxDataURLContent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload too large"})
		return
	}

	draft := models.MessageDraft{
		UserName: req.UserName,
		Content:  req.Content,
		Type:     req.Type,
		FileName: req.FileName,
		FileSize: req.FileSize,
		FileType: req.FileType,
	}

	msg, err := h.store.PostMessage(c.Request.Context(), roomID, draft)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	observability.IncMessageStored()
	h.emitter.MessagePosted(c.Request.Context(), middleware.FromContext(c), roomID, msg.ID, string(msg.Type))
	h.hub.BroadcastMessage(roomID, msg)

	c.JSON(http.StatusOK, msg)
}
