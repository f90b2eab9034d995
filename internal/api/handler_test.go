package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trail-status-backend/config"
	"trail-status-backend/internal/crypt"
	"trail-status-backend/internal/model"
	"trail-status-backend/internal/store"
	"trail-status-backend/internal/strava"
)

// newTestStore builds a sqlite-backed store for handler tests.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.TroyStatus{},
		&model.StravaAuth{},
		&model.PushSubscription{},
	))

	cipher, err := crypt.New("handler-test-key")
	require.NoError(t, err)
	return store.NewGormStore(db, cipher)
}

// staticTokenStore hands out a fresh token so clients never refresh.
type staticTokenStore struct{}

func (staticTokenStore) GetToken(ctx context.Context) (store.TokenData, error) {
	return store.TokenData{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}, nil
}

func (staticTokenStore) SetToken(ctx context.Context, token store.TokenData) error {
	return nil
}

// newTestStravaClient builds a client against a fake upstream base URL.
func newTestStravaClient(baseURL string) *strava.Client {
	cfg := &config.StravaConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		UserID:       "123",
		BaseURL:      baseURL,
		TokenURL:     baseURL + "/oauth/token",
	}
	rc := strava.NewRetryingClient(&http.Client{Timeout: 5 * time.Second}, strava.DefaultPolicy())
	return strava.NewClient(cfg, strava.NewTokenManager(cfg, staticTokenStore{}, rc), rc)
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
