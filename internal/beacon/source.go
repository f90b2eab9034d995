package beacon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound signals that the share behind the beacon url has expired or
// been revoked (HTTP 404). The poller reacts by clearing the stored url.
var ErrNotFound = errors.New("beacon: share not found")

// Source fetches live snapshots from a beacon url. The feed is plain HTTP,
// independent of the fitness API's OAuth.
type Source struct {
	client *http.Client
}

// NewSource creates a beacon source with an explicit request timeout.
func NewSource(timeout time.Duration) *Source {
	return &Source{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a single GET against the beacon url and decodes the snapshot.
func (s *Source) Fetch(ctx context.Context, beaconURL string) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, beaconURL, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := s.client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Snapshot{}, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Snapshot{}, fmt.Errorf("received non-success status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read response body: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal beacon data: %w", err)
	}
	return snap, nil
}
