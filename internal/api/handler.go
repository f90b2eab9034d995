package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"trail-status-backend/config"
	"trail-status-backend/internal/store"
	"trail-status-backend/internal/strava"
	"trail-status-backend/internal/trail"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	strava  *strava.Client
	trails  *trail.Service
	tokens  *strava.TokenManager
	cfg     *config.StravaConfig
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, client *strava.Client, trails *trail.Service, tokens *strava.TokenManager, cfg *config.StravaConfig, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		strava:  client,
		trails:  trails,
		tokens:  tokens,
		cfg:     cfg,
		webpush: webpushOptions,
	}
}
