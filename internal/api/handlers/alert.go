package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/alerts"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/store"
)

type AlertHandler struct {
	alertsSvc *alerts.Coordinator
}

func NewAlertHandler(alertsSvc *alerts.Coordinator) *AlertHandler {
	return &AlertHandler{alertsSvc: alertsSvc}
}

// AcknowledgeRequest is the payload for acknowledging an alert
type AcknowledgeRequest struct {
	AdminName string `json:"admin_name" example:"Jordan"`
}

// ListAlerts lists stored alerts
// @Summary List alerts
// @Description List alerts newest first. By default only pending alerts are returned; pass pending=false for the full history.
// @Tags alerts
// @Produce json
// @Param pending query bool false "Only pending alerts" default(true)
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} models.Alert
// @Failure 500 {object} ErrorResponse
// @Router /api/alerts [get]
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	pendingOnly := true
	if v := c.Query("pending"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid pending value"})
			return
		}
		pendingOnly = parsed
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid limit value"})
			return
		}
		limit = parsed
	}

	list, err := h.alertsSvc.List(c.Request.Context(), pendingOnly, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alerts": list})
}

// AcknowledgeAlert acknowledges a pending alert
// @Summary Acknowledge an alert
// @Description Mark a pending alert as acknowledged. Acknowledging twice returns 409 with the original acknowledger.
// @Tags alerts
// @Accept json
// @Produce json
// @Param id path int true "Alert ID"
// @Param request body AcknowledgeRequest false "Acknowledger name"
// @Success 200 {object} models.Alert
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/alerts/{id}/acknowledge [post]
func (h *AlertHandler) AcknowledgeAlert(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid alert id"})
		return
	}

	// Body is optional
	var req AcknowledgeRequest
	_ = c.ShouldBindJSON(&req)

	alert, err := h.alertsSvc.Acknowledge(c.Request.Context(), id, req.AdminName)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Alert not found"})
		case errors.Is(err, store.ErrAlreadyAcknowledged):
			c.JSON(http.StatusConflict, gin.H{
				"success":         false,
				"error":           "Alert already acknowledged",
				"acknowledged_by": alert.AcknowledgedBy,
				"alert":           alert,
			})
		default:
			log.Error().Err(err).Int64("alert_id", id).Msg("Failed to acknowledge alert")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to acknowledge alert"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alert": alert})
}
