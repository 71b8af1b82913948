package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/camera"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/store"
)

type CameraHandler struct {
	cameraSvc *camera.Service
}

func NewCameraHandler(cameraSvc *camera.Service) *CameraHandler {
	return &CameraHandler{cameraSvc: cameraSvc}
}

// AddCamera registers a camera
// @Summary Register a camera
// @Description Register a new camera in the registry. New cameras start active.
// @Tags cameras
// @Accept json
// @Produce json
// @Param request body models.CameraRequest true "Camera metadata"
// @Success 201 {object} models.Camera
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/cameras [post]
func (h *CameraHandler) AddCamera(c *gin.Context) {
	var req models.CameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	cam, err := h.cameraSvc.Add(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, camera.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("Failed to register camera")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to register camera"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "camera": cam})
}

// ListCameras lists all cameras
// @Summary List cameras
// @Description List all registered cameras in registration order
// @Tags cameras
// @Produce json
// @Success 200 {array} models.Camera
// @Failure 500 {object} ErrorResponse
// @Router /api/cameras [get]
func (h *CameraHandler) ListCameras(c *gin.Context) {
	cameras, err := h.cameraSvc.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list cameras")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list cameras"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cameras": cameras})
}

// ToggleCamera flips a camera between active and inactive
// @Summary Toggle camera status
// @Description Flip a camera between active and inactive
// @Tags cameras
// @Produce json
// @Param id path int true "Camera ID"
// @Success 200 {object} models.Camera
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cameras/{id}/toggle [post]
func (h *CameraHandler) ToggleCamera(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid camera id"})
		return
	}

	cam, err := h.cameraSvc.Toggle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Camera not found"})
			return
		}
		log.Error().Err(err).Int64("camera_id", id).Msg("Failed to toggle camera")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to toggle camera"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "camera": cam})
}

// DeleteCamera removes a camera from the registry
// @Summary Remove a camera
// @Description Remove a camera. Existing alerts keep their denormalized camera details.
// @Tags cameras
// @Produce json
// @Param id path int true "Camera ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cameras/{id} [delete]
func (h *CameraHandler) DeleteCamera(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid camera id"})
		return
	}

	if err := h.cameraSvc.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Camera not found"})
			return
		}
		log.Error().Err(err).Int64("camera_id", id).Msg("Failed to remove camera")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to remove camera"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Camera removed"})
}
