package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail-status-backend/config"
	"trail-status-backend/internal/trail"
)

const trailsPage = `<html><body><script>var trail_systems = [
	{"id": 1, "status": "open", "name": "Center Trails", "city": "Des Moines", "state": "IA",
	 "lat": 41.595, "lng": -93.655, "total_distance": 12.3, "status_description": "Riding great"},
	{"id": 9, "status": "mystery", "name": "Unmapped", "city": "Des Moines", "state": "IA",
	 "lat": 41.7, "lng": -93.7, "total_distance": 1.0, "status_description": ""}
];</script></body></html>`

func newTrailPageServer(t *testing.T) *trail.Service {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, trailsPage)
	}))
	t.Cleanup(server.Close)
	return trail.NewService(&config.TrailConfig{DataURL: server.URL})
}

// newActivityServer serves one page of rides near Center Trails, then an
// empty page to end pagination.
func newActivityServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		if r.URL.Query().Get("page") != "1" {
			fmt.Fprint(w, "[]")
			return
		}
		fmt.Fprint(w, `[
			{"id": 11, "type": "Ride", "start_latlng": [41.596, -93.654], "moving_time": 3600, "achievement_count": 1},
			{"id": 12, "type": "Ride", "start_latlng": [41.594, -93.656], "moving_time": 1800, "achievement_count": 0},
			{"id": 13, "type": "Run", "start_latlng": [41.596, -93.654], "moving_time": 1800, "achievement_count": 0}
		]`)
	}))
	t.Cleanup(server.Close)
	return server
}

func setupTrailsRouter(t *testing.T, activityStatus int) *gin.Engine {
	handler := NewHandler(nil, newTestStravaClient(newActivityServer(t, activityStatus).URL), newTrailPageServer(t), nil, nil, nil)

	r := newTestEngine()
	r.GET("/api/trails", handler.GetTrails)
	r.GET("/api/trails/ride_counts", handler.GetTrailRideCounts)
	return r
}

func TestGetTrails_AttachesRideStats(t *testing.T) {
	router := setupTrailsRouter(t, http.StatusOK)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/trails", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var systems []trail.System
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &systems))
	require.Len(t, systems, 1, "systems with unknown status are dropped from the enriched list")

	assert.Equal(t, int64(1), systems[0].ID)
	require.NotNil(t, systems[0].RideStats)
	assert.Equal(t, "2 times", systems[0].RideStats.Rides, "only rides count, not runs")
	assert.Equal(t, "1.5h", systems[0].RideStats.TotalMovingTime)
}

func TestGetTrails_DegradesWithoutRides(t *testing.T) {
	router := setupTrailsRouter(t, http.StatusInternalServerError)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/trails", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var systems []trail.System
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &systems))
	require.Len(t, systems, 2, "bare conditions keep every system")
	assert.Nil(t, systems[0].RideStats)
}

func TestGetTrailRideCounts(t *testing.T) {
	router := setupTrailsRouter(t, http.StatusOK)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/trails/ride_counts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"1": 2}`, w.Body.String())
}

func TestHealthcheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	router := NewRouter(cfg, newTestStore(t), nil, trail.NewService(&cfg.Trail), nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthcheck", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ok", w.Body.String())
}
