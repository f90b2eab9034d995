package trail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"trail-status-backend/config"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheKeyData = "trail_systems"

	// The conditions page embeds its data as a script-tag JSON literal.
	dataStartTag = "var trail_systems = "
	dataEndTag   = ";</script>"
)

// ErrNoDataURL is returned when the conditions feed is not configured.
var ErrNoDataURL = errors.New("trail: data url is not configured")

// Service fetches and caches trail conditions. The feed is a public HTML
// page with the system list embedded as JSON; results are memoized for five
// minutes and ordered by proximity to the configured home coordinates.
type Service struct {
	cfg    *config.TrailConfig
	client *http.Client
	cache  *cache.Cache
}

// NewService creates a trail conditions service.
func NewService(cfg *config.TrailConfig) *Service {
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  cache.New(cacheTTL, 10*time.Minute),
	}
}

// GetSystems returns the current trail systems, cached for five minutes.
func (s *Service) GetSystems(ctx context.Context) ([]System, error) {
	if cached, found := s.cache.Get(cacheKeyData); found {
		log.Println("Using cached trail data")
		return cached.([]System), nil
	}

	if s.cfg.DataURL == "" {
		return nil, ErrNoDataURL
	}

	log.Println("Fetching new trail data")
	html, err := s.fetchPage(ctx)
	if err != nil {
		return nil, err
	}

	systems, err := extractSystems(html)
	if err != nil {
		return nil, err
	}
	s.sortByHomeProximity(systems)

	s.cache.Set(cacheKeyData, systems, cacheTTL)
	return systems, nil
}

func (s *Service) fetchPage(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.DataURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch trail data page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("trail data source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read trail data page: %w", err)
	}
	return string(body), nil
}

// extractSystems pulls the embedded JSON literal out of the page.
func extractSystems(html string) ([]System, error) {
	start := strings.Index(html, dataStartTag)
	if start < 0 {
		return nil, errors.New("trail: data start tag not found in page")
	}
	start += len(dataStartTag)

	end := strings.Index(html[start:], dataEndTag)
	if end < 0 {
		return nil, errors.New("trail: data end tag not found in page")
	}

	var systems []System
	if err := json.Unmarshal([]byte(html[start:start+end]), &systems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trail systems: %w", err)
	}
	return systems, nil
}

// sortByHomeProximity orders systems nearest-first relative to the home
// coordinates. Without home coordinates the feed's order is kept. Plain
// coordinate-delta distance is enough for ordering at this scale.
func (s *Service) sortByHomeProximity(systems []System) {
	if s.cfg.HomeLat == 0 && s.cfg.HomeLng == 0 {
		return
	}

	sort.SliceStable(systems, func(i, j int) bool {
		return s.homeDistance(systems[i]) < s.homeDistance(systems[j])
	})
}

func (s *Service) homeDistance(system System) float64 {
	dLat := system.Lat - s.cfg.HomeLat
	dLng := system.Lng - s.cfg.HomeLng
	return dLat*dLat + dLng*dLng
}
