package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/alerts"
)

type AnalyticsHandler struct {
	alertsSvc *alerts.Coordinator
	loc       *time.Location
}

func NewAnalyticsHandler(alertsSvc *alerts.Coordinator, loc *time.Location) *AnalyticsHandler {
	return &AnalyticsHandler{alertsSvc: alertsSvc, loc: loc}
}

const (
	defaultWindowHours = 24
	// Ten years; anything larger would overflow time.Duration and put
	// the cutoff in the future
	maxWindowHours = 24 * 365 * 10
)

func trailingWindow(c *gin.Context) (time.Time, bool) {
	hours := defaultWindowHours
	if v := c.Query("hours"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid hours value"})
			return time.Time{}, false
		}
		if parsed > maxWindowHours {
			parsed = maxWindowHours
		}
		hours = parsed
	}
	return time.Now().UTC().Add(-time.Duration(hours) * time.Hour), true
}

// Summary returns aggregate alert counts
// @Summary Detection summary
// @Description Aggregate alert counts for the trailing window, total and broken down by object class and camera
// @Tags analytics
// @Produce json
// @Param hours query int false "Trailing window in hours" default(24)
// @Success 200 {object} models.Summary
// @Failure 500 {object} ErrorResponse
// @Router /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	since, ok := trailingWindow(c)
	if !ok {
		return
	}

	summary, err := h.alertsSvc.Summary(c.Request.Context(), since)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build detection summary")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

// Hourly returns per-hour alert counts
// @Summary Hourly detection counts
// @Description Alert counts bucketed per hour and object class, aligned to the configured reporting timezone
// @Tags analytics
// @Produce json
// @Param hours query int false "Trailing window in hours" default(24)
// @Param camera_id query int false "Restrict to one camera"
// @Success 200 {array} models.HourlyCount
// @Failure 500 {object} ErrorResponse
// @Router /api/analytics/hourly [get]
func (h *AnalyticsHandler) Hourly(c *gin.Context) {
	since, ok := trailingWindow(c)
	if !ok {
		return
	}

	var cameraID int64
	if v := c.Query("camera_id"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid camera_id value"})
			return
		}
		cameraID = parsed
	}

	counts, err := h.alertsSvc.Hourly(c.Request.Context(), since, cameraID, h.loc)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build hourly counts")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build hourly counts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": counts})
}
