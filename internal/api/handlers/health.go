package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	version string
	nats    func() bool
	clients func() int
	cameras func(ctx context.Context) (int, error)
}

func NewHealthHandler(version string, nats func() bool, clients func() int, cameras func(ctx context.Context) (int, error)) *HealthHandler {
	return &HealthHandler{
		version: version,
		nats:    nats,
		clients: clients,
		cameras: cameras,
	}
}

type HealthResponse struct {
	Status        string `json:"status" example:"healthy"`
	Version       string `json:"version" example:"1.0.0"`
	NatsConnected bool   `json:"nats_connected" example:"true"`
	ActiveCameras int    `json:"active_cameras" example:"4"`
	Clients       int    `json:"clients" example:"2"`
}

// HealthCheck reports service health
// @Summary Health check
// @Description Check backend health, NATS connectivity and active camera count
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	active, err := h.cameras(c.Request.Context())
	status := "healthy"
	if err != nil {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:        status,
		Version:       h.version,
		NatsConnected: h.nats(),
		ActiveCameras: active,
		Clients:       h.clients(),
	})
}
