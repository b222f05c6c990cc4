// Package geo holds coordinate math used by ranking and radius filtering.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean radius of the sphere used for haversine distance.
const EarthRadiusKm = 6371.0

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsSet reports whether c is a real point. (0,0) is the "no location" sentinel.
func (c Coordinates) IsSet() bool {
	return c.Lat != 0 || c.Lng != 0
}

// Valid checks that latitude is in [-90,90] and longitude in [-180,180].
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// DistanceKm returns the great-circle distance in kilometres between a and b.
// Out-of-range input is not rejected; it yields a meaningless but finite number.
func DistanceKm(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// Rounding can push h just past 1 for near-antipodal points.
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// FormatDistance renders a human label: metres under 1 km, one decimal under 10 km,
// whole kilometres otherwise.
func FormatDistance(km float64) string {
	switch {
	case km < 1:
		return fmt.Sprintf("%d m away", int(math.Round(km*1000)))
	case km < 10:
		return fmt.Sprintf("%.1f km away", km)
	default:
		return fmt.Sprintf("%d km away", int(math.Round(km)))
	}
}
