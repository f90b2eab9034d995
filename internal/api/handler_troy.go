package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// troyStatusResponse is the public view of the durable trail state. The
// beacon url itself is private; only its presence is reported.
type troyStatusResponse struct {
	IsOnTrail   bool       `json:"is_on_trail"`
	HasBeacon   bool       `json:"has_beacon"`
	LastUpdated *time.Time `json:"last_updated"`
}

// GetTroyStatus handles GET /api/troy.
func (h *Handler) GetTroyStatus(c *gin.Context) {
	status, err := h.store.GetTroyStatus(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to read troy status"})
		return
	}

	c.JSON(http.StatusOK, troyStatusResponse{
		IsOnTrail:   status.IsOnTrail,
		HasBeacon:   status.BeaconURL != nil,
		LastUpdated: status.TrailStatusUpdated,
	})
}
