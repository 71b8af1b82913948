package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/ingest"
)

type IngestHandler struct {
	ingestSvc *ingest.Service
}

func NewIngestHandler(ingestSvc *ingest.Service) *IngestHandler {
	return &IngestHandler{ingestSvc: ingestSvc}
}

// PostDetection ingests one detection event
// @Summary Ingest a detection event
// @Description Run a detection through classification, the cooldown window and alert creation. Rejected and suppressed detections return 200 with no alert.
// @Tags detections
// @Accept json
// @Produce json
// @Param request body models.DetectionEvent true "Detection event"
// @Success 200 {object} models.IngestResult
// @Success 201 {object} models.IngestResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/detections [post]
func (h *IngestHandler) PostDetection(c *gin.Context) {
	var ev models.DetectionEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.ingestSvc.ProcessDetection(c.Request.Context(), ev)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrInvalidEvent):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, ingest.ErrUnknownCamera):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		default:
			log.Error().Err(err).Int64("camera_id", ev.CameraID).Msg("Failed to process detection")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process detection"})
		}
		return
	}

	status := http.StatusOK
	if result.Alert != nil {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "result": result})
}
