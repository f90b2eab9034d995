package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"trail-status-backend/config"
)

const (
	cacheTTL = 5 * time.Minute
	perPage  = 200

	cacheKeyAthleteStats = "athlete_stats"
	cacheKeyRides        = "rides"
)

// Client provides authenticated, paginated, cached access to the fitness
// API. Athlete stats and the ride list are memoized for five minutes; a
// cache-miss race means duplicate fetches, which is accepted for this load
// profile.
type Client struct {
	cfg    *config.StravaConfig
	tokens *TokenManager
	http   *RetryingClient
	cache  *cache.Cache
}

// NewClient creates a fitness API client.
func NewClient(cfg *config.StravaConfig, tokens *TokenManager, rc *RetryingClient) *Client {
	return &Client{
		cfg:    cfg,
		tokens: tokens,
		http:   rc,
		cache:  cache.New(cacheTTL, 10*time.Minute),
	}
}

// GetAthleteStats returns the configured athlete's aggregate totals, cached
// for five minutes.
func (c *Client) GetAthleteStats(ctx context.Context) (AthleteStats, error) {
	if cached, found := c.cache.Get(cacheKeyAthleteStats); found {
		log.Println("Using cached athlete stats")
		return cached.(AthleteStats), nil
	}

	if c.cfg.UserID == "" {
		return AthleteStats{}, fmt.Errorf("no strava user id configured")
	}

	log.Println("Fetching new athlete stats")
	body, err := c.get(ctx, fmt.Sprintf("%s/athletes/%s/stats", c.cfg.BaseURL, c.cfg.UserID))
	if err != nil {
		return AthleteStats{}, err
	}

	var stats AthleteStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return AthleteStats{}, fmt.Errorf("failed to unmarshal athlete stats: %w", err)
	}

	c.cache.Set(cacheKeyAthleteStats, stats, cacheTTL)
	return stats, nil
}

// GetAllActivities returns every ride-type activity, fetching pages of up to
// 200 items until an empty page. The concatenated result is cached for five
// minutes.
func (c *Client) GetAllActivities(ctx context.Context) ([]Activity, error) {
	if cached, found := c.cache.Get(cacheKeyRides); found {
		log.Println("Using cached ride list")
		return cached.([]Activity), nil
	}

	var all []Activity
	for page := 1; ; page++ {
		body, err := c.get(ctx, fmt.Sprintf("%s/athlete/activities?per_page=%d&page=%d", c.cfg.BaseURL, perPage, page))
		if err != nil {
			return nil, fmt.Errorf("failed to get activities page %d: %w", page, err)
		}

		var items []Activity
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activities page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}
		all = append(all, items...)
	}

	rides := make([]Activity, 0, len(all))
	for _, a := range all {
		if a.Type == "Ride" {
			rides = append(rides, a)
		}
	}

	c.cache.Set(cacheKeyRides, rides, cacheTTL)
	return rides, nil
}

// GetActivity fetches a single activity, always fresh. It is used once right
// after a status transition to enrich a notification, so caching it would
// only serve stale data.
func (c *Client) GetActivity(ctx context.Context, id int64) (Activity, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/activities/%d", c.cfg.BaseURL, id))
	if err != nil {
		return Activity{}, err
	}

	var activity Activity
	if err := json.Unmarshal(body, &activity); err != nil {
		return Activity{}, fmt.Errorf("failed to unmarshal activity: %w", err)
	}
	return activity, nil
}

// get performs an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get strava token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("received non-success status code %d: %s", resp.StatusCode, body)
	}
	return body, nil
}
