package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"trail-status-backend/internal/strava"
)

// StravaAuthRedirect handles GET /auth/strava by redirecting the browser to
// Strava's authorization page.
func (h *Handler) StravaAuthRedirect(c *gin.Context) {
	if h.cfg.ClientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "strava client id is not configured"})
		return
	}

	params := url.Values{
		"client_id":       {h.cfg.ClientID},
		"response_type":   {"code"},
		"redirect_uri":    {h.cfg.RedirectURL},
		"approval_prompt": {"force"},
		"scope":           {"read,activity:read"},
	}
	c.Redirect(http.StatusTemporaryRedirect, "https://www.strava.com/oauth/authorize?"+params.Encode())
}

// StravaAuthCallback handles GET /auth/strava/callback, exchanging the
// authorization code for a token.
func (h *Handler) StravaAuthCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to authenticate strava user", "detail": errParam})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	_, err := h.tokens.ExchangeCode(c.Request.Context(), code)
	switch {
	case errors.Is(err, strava.ErrUserMismatch), errors.Is(err, strava.ErrNoUserID):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get strava token"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "strava account authorized"})
	}
}
