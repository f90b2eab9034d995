package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type trailWebhookRequest struct {
	BeaconURL string `json:"beacon_url" binding:"required,url"`
}

// PostTrailWebhook handles POST /api/webhooks/trail. It is the external
// trigger that arms the poller by storing a fresh beacon share url.
func (h *Handler) PostTrailWebhook(c *gin.Context) {
	var req trailWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SetBeaconURL(c.Request.Context(), &req.BeaconURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store beacon url"})
		return
	}

	c.Status(http.StatusOK)
}
