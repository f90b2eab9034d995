package trail

import (
	"fmt"
	"math"

	"trail-status-backend/internal/strava"
)

// A ride counts toward a trail system when it started within this many
// meters of the system's coordinates.
const rideMatchRadiusMeters = 3000.0

const earthRadiusMeters = 6371000.0

// Stats accumulates ride history against one trail system.
type Stats struct {
	ID               int64
	Rides            int
	AchievementCount int64
	TotalMovingTime  int64 // seconds
}

// StatsDisplay is the human-readable form of Stats used in API responses.
type StatsDisplay struct {
	ID               int64  `json:"id"`
	Rides            string `json:"rides"`
	AchievementCount int64  `json:"achievement_count"`
	TotalMovingTime  string `json:"total_moving_time"`
}

// Display formats the ride count and moving time. Moving time is rounded
// to the nearest half hour.
func (s Stats) Display() StatsDisplay {
	rides := fmt.Sprintf("%d times", s.Rides)
	if s.Rides == 1 {
		rides = "1 time"
	}

	movingTime := "never"
	if s.TotalMovingTime > 0 {
		hours := math.Round(float64(s.TotalMovingTime)/3600.0*2.0) / 2.0
		if hours == math.Trunc(hours) {
			movingTime = fmt.Sprintf("%.0fh", hours)
		} else {
			movingTime = fmt.Sprintf("%.1fh", hours)
		}
	}

	return StatsDisplay{
		ID:               s.ID,
		Rides:            rides,
		AchievementCount: s.AchievementCount,
		TotalMovingTime:  movingTime,
	}
}

// CalculateStats attributes each ride to the nearest trail system within the
// match radius. Rides without a usable start position are skipped.
func CalculateStats(systems []System, rides []strava.Activity) map[int64]Stats {
	counts := make(map[int64]Stats)

	for _, ride := range rides {
		lat, lng, ok := rideStart(ride)
		if !ok {
			continue
		}

		var closestID int64
		closestDistance := math.Inf(1)
		for _, system := range systems {
			if !validCoordinates(system.Lat, system.Lng) {
				continue
			}
			distance := haversineMeters(lat, lng, system.Lat, system.Lng)
			if distance <= rideMatchRadiusMeters && distance < closestDistance {
				closestID = system.ID
				closestDistance = distance
			}
		}
		if math.IsInf(closestDistance, 1) {
			continue
		}

		entry := counts[closestID]
		entry.ID = closestID
		entry.Rides++
		entry.AchievementCount += ride.AchievementCount
		entry.TotalMovingTime += ride.MovingTime
		counts[closestID] = entry
	}

	return counts
}

// AttachStats returns the systems with ride stats filled in. Systems whose
// status could not be decoded are dropped, since a row with neither a known
// condition nor any local history carries no signal.
func AttachStats(systems []System, stats map[int64]Stats) []System {
	enriched := make([]System, 0, len(systems))
	for _, system := range systems {
		if s, ok := stats[system.ID]; ok {
			display := s.Display()
			system.RideStats = &display
		}
		if system.Status == StatusUnknown {
			continue
		}
		enriched = append(enriched, system)
	}
	return enriched
}

func rideStart(ride strava.Activity) (lat, lng float64, ok bool) {
	if len(ride.StartLatLng) != 2 {
		return 0, 0, false
	}
	lat, lng = ride.StartLatLng[0], ride.StartLatLng[1]
	return lat, lng, validCoordinates(lat, lng)
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
