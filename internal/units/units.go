// Package units converts the fitness API's metric values into the imperial
// units used in notifications.
package units

import "math"

// MetersToFeet converts meters to feet, rounded to one decimal place.
func MetersToFeet(meters float64) float64 {
	return round1(meters * 3.28084)
}

// MetersToMiles converts meters to miles, rounded to one decimal place.
func MetersToMiles(meters float64) float64 {
	return round1(meters * 0.000621371)
}

// MpsToMph converts meters per second to miles per hour, rounded to one
// decimal place.
func MpsToMph(mps float64) float64 {
	return round1(mps * 2.23694)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
