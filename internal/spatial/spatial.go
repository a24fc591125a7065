// Package spatial provides the nearest-neighbor index used to join incidents
// to street segments, plus great-circle helpers and polyline decoding.
package spatial

import "github.com/golang/geo/s2"

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// LatLng is a latitude/longitude pair in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// HaversineMeters calculates the great-circle distance between two points
// in meters.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}
