package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trail-status-backend/internal/trail"
)

// GetTrails handles GET /api/trails, returning the area's trail systems
// with Troy's ride history attached. When the ride list is unavailable the
// bare conditions are returned instead of failing the request.
func (h *Handler) GetTrails(c *gin.Context) {
	systems, err := h.trails.GetSystems(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to fetch trail conditions"})
		return
	}

	rides, err := h.strava.GetAllActivities(c.Request.Context())
	if err != nil {
		log.Printf("Failed to get rides for trail stats, returning bare conditions: %v", err)
		c.JSON(http.StatusOK, systems)
		return
	}

	c.JSON(http.StatusOK, trail.AttachStats(systems, trail.CalculateStats(systems, rides)))
}

// GetTrailRideCounts handles GET /api/trails/ride_counts, a lightweight
// map of trail system id to ride count.
func (h *Handler) GetTrailRideCounts(c *gin.Context) {
	systems, err := h.trails.GetSystems(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to fetch trail conditions"})
		return
	}

	rides, err := h.strava.GetAllActivities(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to fetch activities"})
		return
	}

	counts := make(map[string]int)
	for id, stats := range trail.CalculateStats(systems, rides) {
		counts[strconv.FormatInt(id, 10)] = stats.Rides
	}
	c.JSON(http.StatusOK, counts)
}
