package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/hub"
)

type WSHandler struct {
	hub *hub.Hub
}

func NewWSHandler(h *hub.Hub) *WSHandler {
	return &WSHandler{hub: h}
}

// Subscribe upgrades the connection and streams live events
// @Summary Subscribe to live events
// @Description Upgrade to WebSocket and receive new_alert, alert_acknowledged and camera_status_update events
// @Tags events
// @Router /ws [get]
func (h *WSHandler) Subscribe(c *gin.Context) {
	if err := h.hub.ServeWS(c.Writer, c.Request); err != nil {
		// Upgrade failures already wrote the HTTP error response
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
	}
}
