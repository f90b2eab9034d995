package strava

// Totals is one aggregate bucket of athlete stats.
type Totals struct {
	Count            int     `json:"count"`
	Distance         float64 `json:"distance"`
	MovingTime       float64 `json:"moving_time"`
	ElapsedTime      float64 `json:"elapsed_time"`
	ElevationGain    float64 `json:"elevation_gain"`
	AchievementCount *int    `json:"achievement_count"`
}

// AthleteStats are the aggregate totals by activity type and time window.
type AthleteStats struct {
	BiggestRideDistance       float64  `json:"biggest_ride_distance"`
	BiggestClimbElevationGain *float64 `json:"biggest_climb_elevation_gain"`
	RecentRideTotals          Totals   `json:"recent_ride_totals"`
	AllRideTotals             Totals   `json:"all_ride_totals"`
	RecentRunTotals           Totals   `json:"recent_run_totals"`
	AllRunTotals              Totals   `json:"all_run_totals"`
	RecentSwimTotals          Totals   `json:"recent_swim_totals"`
	AllSwimTotals             Totals   `json:"all_swim_totals"`
	YTDRideTotals             Totals   `json:"ytd_ride_totals"`
	YTDRunTotals              Totals   `json:"ytd_run_totals"`
	YTDSwimTotals             Totals   `json:"ytd_swim_totals"`
}

// Map carries the encoded polylines of an activity.
type Map struct {
	ID              string  `json:"id"`
	Polyline        *string `json:"polyline"`
	SummaryPolyline string  `json:"summary_polyline"`
	ResourceState   int64   `json:"resource_state"`
}

// Athlete identifies the account an activity belongs to.
type Athlete struct {
	ID int64 `json:"id"`
}

// Activity is a single recorded activity.
type Activity struct {
	ID                 int64     `json:"id"`
	ResourceState      int64     `json:"resource_state"`
	Athlete            Athlete   `json:"athlete"`
	Name               string    `json:"name"`
	Distance           float64   `json:"distance"`
	MovingTime         int64     `json:"moving_time"`
	ElapsedTime        int64     `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          string    `json:"start_date"`
	StartDateLocal     string    `json:"start_date_local"`
	Timezone           string    `json:"timezone"`
	AchievementCount   int64     `json:"achievement_count"`
	Map                *Map      `json:"map"`
	AverageSpeed       float64   `json:"average_speed"`
	MaxSpeed           float64   `json:"max_speed"`
	ElevHigh           float64   `json:"elev_high"`
	ElevLow            float64   `json:"elev_low"`
	StartLatLng        []float64 `json:"start_latlng"`
	EndLatLng          []float64 `json:"end_latlng"`
}
