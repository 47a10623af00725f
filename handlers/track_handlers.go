package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotepulse/api/analytics"
	"quotepulse/api/models"
	"quotepulse/api/utils"
)

type AnalyticsHandlers struct {
	Engine *analytics.Engine
}

func NewAnalyticsHandlers(engine *analytics.Engine) *AnalyticsHandlers {
	return &AnalyticsHandlers{Engine: engine}
}

// TrackRequest is one client-side action. Device and location are optional;
// missing device fields fall back to request headers.
type TrackRequest struct {
	EventType string               `json:"eventType" binding:"required"`
	EventData map[string]any       `json:"eventData"`
	UserID    string               `json:"userId"`
	Device    *models.DeviceInfo   `json:"deviceInfo"`
	Location  *models.LocationData `json:"locationData"`
}

// TrackEvent ingests a batch of events. Recording is fire-and-forget: once
// the body parses, the response is 200 regardless of what the engine could
// persist.
func (h *AnalyticsHandlers) TrackEvent(c *gin.Context) {
	var incoming []TrackRequest
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sessionID := utils.SessionID(c.Request)
	for _, req := range incoming {
		device := models.DeviceInfo{
			Platform: c.Request.UserAgent(),
			Language: c.GetHeader("Accept-Language"),
		}
		if req.Device != nil {
			device = *req.Device
		}
		h.Engine.Track(c.Request.Context(), req.EventType, req.EventData, analytics.TrackContext{
			UserID:    req.UserID,
			SessionID: sessionID,
			Device:    device,
			Location:  req.Location,
		})
	}

	c.Header(utils.SessionHeader, sessionID)
	c.Status(http.StatusOK)
}

// GetUserInsights returns the behavioral profile for one user over the
// requested window (default 30d).
func (h *AnalyticsHandlers) GetUserInsights(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId path parameter is required"})
		return
	}
	timeRange := analytics.TimeRange(c.DefaultQuery("range", string(analytics.DefaultRange)))
	if !timeRange.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'range' parameter. Use one of: 7d, 30d, 90d, 1y"})
		return
	}

	c.JSON(http.StatusOK, h.Engine.GenerateUserInsights(userID, timeRange))
}

// GetAppInsights returns the aggregate report across all users.
func (h *AnalyticsHandlers) GetAppInsights(c *gin.Context) {
	timeRange := analytics.TimeRange(c.DefaultQuery("range", string(analytics.DefaultRange)))
	if !timeRange.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'range' parameter. Use one of: 7d, 30d, 90d, 1y"})
		return
	}

	c.JSON(http.StatusOK, h.Engine.GenerateAppInsights(timeRange))
}

// ClearAnalytics erases one user's events (userId query param) or the whole
// log, for data-deletion compliance.
func (h *AnalyticsHandlers) ClearAnalytics(c *gin.Context) {
	userID := c.Query("userId")
	h.Engine.ClearAnalyticsData(userID)
	c.JSON(http.StatusOK, gin.H{
		"message":   "analytics data cleared",
		"remaining": h.Engine.EventCount(),
	})
}

// ExportAnalytics serializes the retained log as csv or json, optionally
// scoped to one user.
func (h *AnalyticsHandlers) ExportAnalytics(c *gin.Context) {
	userID := c.Query("userId")
	format := c.DefaultQuery("format", analytics.FormatCSV)

	data, err := h.Engine.ExportAnalyticsData(userID, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'format' parameter. Use 'csv' or 'json'"})
		return
	}

	switch format {
	case analytics.FormatCSV:
		c.Header("Content-Disposition", `attachment; filename="analytics_export.csv"`)
		c.Data(http.StatusOK, "text/csv", []byte(data))
	default:
		c.Data(http.StatusOK, "application/json", []byte(data))
	}
}
