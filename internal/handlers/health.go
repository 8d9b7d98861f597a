package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"droproom/internal/store"
)

// HealthHandler reports process and backend health.
type HealthHandler struct {
	store   store.Store
	backend string
}

// NewHealthHandler builds a HealthHandler.
func NewHealthHandler(st store.Store, backend string) *HealthHandler {
	return &HealthHandler{store: st, backend: backend}
}

// Health pings the backend.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "backend": h.backend})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": h.backend})
}
