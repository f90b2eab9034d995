package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"trail-status-backend/config"
	"trail-status-backend/internal/store"
)

// ErrUserMismatch is returned when an authorization-code exchange succeeds
// for an athlete other than the configured one.
var ErrUserMismatch = errors.New("strava: authenticated athlete does not match the configured user id")

// ErrNoUserID is returned when an exchange reports an athlete but no
// expected user id is configured to validate it against.
var ErrNoUserID = errors.New("strava: no user id configured to validate the authenticated athlete")

// TokenStore is the slice of the store the token manager needs.
type TokenStore interface {
	GetToken(ctx context.Context) (store.TokenData, error)
	SetToken(ctx context.Context, token store.TokenData) error
}

// tokenResponse is the OAuth token endpoint's payload.
type tokenResponse struct {
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
	Athlete      *struct {
		ID int64 `json:"id"`
	} `json:"athlete"`
}

// TokenManager owns the in-memory cached OAuth token and keeps it fresh via
// the refresh-token grant. It is safe for concurrent use by the poller and
// web handlers.
type TokenManager struct {
	mu     sync.Mutex
	cfg    *config.StravaConfig
	store  TokenStore
	client *RetryingClient
	cached *store.TokenData
	now    func() time.Time
}

// NewTokenManager creates a token manager backed by the given store.
func NewTokenManager(cfg *config.StravaConfig, ts TokenStore, client *RetryingClient) *TokenManager {
	return &TokenManager{
		cfg:    cfg,
		store:  ts,
		client: client,
		now:    time.Now,
	}
}

// Token returns a usable access token, loading from the store on first use
// and refreshing when expired. Refresh failures surface as errors and leave
// the caller to retry on its next cycle.
func (m *TokenManager) Token(ctx context.Context) (store.TokenData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached == nil {
		token, err := m.store.GetToken(ctx)
		if err != nil {
			return store.TokenData{}, fmt.Errorf("no strava token available, please authenticate: %w", err)
		}
		m.cached = &token
	}

	if !m.cached.Expired(m.now()) {
		return *m.cached, nil
	}

	log.Println("Strava token has expired, refreshing")
	token, err := m.grant(ctx, url.Values{
		"client_id":     {m.cfg.ClientID},
		"client_secret": {m.cfg.ClientSecret},
		"refresh_token": {m.cached.RefreshToken},
		"grant_type":    {"refresh_token"},
	})
	if err != nil {
		return store.TokenData{}, fmt.Errorf("failed to refresh strava token: %w", err)
	}

	m.persist(ctx, token)
	return token, nil
}

// ExchangeCode performs the authorization-code grant and validates the
// authenticated athlete against the configured user id.
func (m *TokenManager) ExchangeCode(ctx context.Context, code string) (store.TokenData, error) {
	log.Println("Fetching new strava token using OAuth flow")

	resp, err := m.request(ctx, url.Values{
		"client_id":     {m.cfg.ClientID},
		"client_secret": {m.cfg.ClientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
	})
	if err != nil {
		return store.TokenData{}, fmt.Errorf("failed to get token from strava: %w", err)
	}

	if resp.Athlete != nil {
		if m.cfg.UserID == "" {
			return store.TokenData{}, ErrNoUserID
		}
		if strconv.FormatInt(resp.Athlete.ID, 10) != m.cfg.UserID {
			return store.TokenData{}, ErrUserMismatch
		}
	}

	token := store.TokenData{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.persist(ctx, token)
	return token, nil
}

// grant runs a token grant and converts the response. Callers hold m.mu.
func (m *TokenManager) grant(ctx context.Context, params url.Values) (store.TokenData, error) {
	resp, err := m.request(ctx, params)
	if err != nil {
		return store.TokenData{}, err
	}
	return store.TokenData{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
	}, nil
}

// persist caches the token and writes it through to the store. A store
// write failure is logged but does not fail the caller; the in-memory token
// is still usable for this process.
func (m *TokenManager) persist(ctx context.Context, token store.TokenData) {
	m.cached = &token
	if err := m.store.SetToken(ctx, token); err != nil {
		log.Printf("Failed to persist strava token: %v", err)
	}
}

func (m *TokenManager) request(ctx context.Context, params url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.TokenURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.client.Do(req)
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

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token response: %w", err)
	}
	return &tr, nil
}
