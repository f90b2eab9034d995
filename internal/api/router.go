package api

import (
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"trail-status-backend/config"
	"trail-status-backend/internal/mw"
	"trail-status-backend/internal/store"
	"trail-status-backend/internal/strava"
	"trail-status-backend/internal/trail"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, client *strava.Client, trails *trail.Service, tokens *strava.TokenManager, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, client, trails, tokens, &cfg.Strava, webpushOptions)

	r.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "Ok")
	})

	rateLimit := cfg.Server.RateLimitPerSec
	if rateLimit <= 0 {
		rateLimit = 10
	}
	rateLimiter := mw.RateLimiter(rate.Limit(rateLimit), 5)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	cacheStore := cache.New(cacheTTL, 10*time.Minute)
	caching := mw.Cache(cacheStore, cacheTTL)

	auth := r.Group("/auth")
	{
		auth.GET("/strava", handler.StravaAuthRedirect)
		auth.GET("/strava/callback", handler.StravaAuthCallback)
	}

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/troy", handler.GetTroyStatus)
		api.GET("/stats", caching, handler.GetAthleteStats)
		api.GET("/activities", caching, handler.GetActivities)
		api.GET("/trails", caching, handler.GetTrails)
		api.GET("/trails/ride_counts", handler.GetTrailRideCounts)

		api.POST("/webhooks/trail", handler.PostTrailWebhook)

		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
