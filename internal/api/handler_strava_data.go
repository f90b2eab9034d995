package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAthleteStats handles GET /api/stats. Upstream auth or rate-limit
// failures surface as a 502; the poller's next cycle is unaffected.
func (h *Handler) GetAthleteStats(c *gin.Context) {
	stats, err := h.strava.GetAthleteStats(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to fetch athlete stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetActivities handles GET /api/activities, returning the cached ride list.
func (h *Handler) GetActivities(c *gin.Context) {
	rides, err := h.strava.GetAllActivities(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to fetch activities"})
		return
	}
	c.JSON(http.StatusOK, rides)
}
