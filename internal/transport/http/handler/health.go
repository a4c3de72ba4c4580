package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	pingStore func(ctx context.Context) error
}

// NewHealthHandler takes the store's ping; a nil ping means the store has
// no connection to probe (local chromem mode).
func NewHealthHandler(pingStore func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{pingStore: pingStore}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	storeOK := true
	storeMsg := ""
	if h.pingStore != nil {
		if err := h.pingStore(ctx); err != nil {
			storeOK = false
			storeMsg = err.Error()
		}
	}

	statusCode := http.StatusOK
	if !storeOK {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, gin.H{
		"store": gin.H{"ok": storeOK, "message": storeMsg},
	})
}
