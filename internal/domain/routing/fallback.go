package routing

import (
	"fmt"
	"math"
)

// assumedSpeedKmh is the average speed used to derive a duration for
// synthesized routes.
const assumedSpeedKmh = 75.0

// SynthesizeRoute builds a single deterministic candidate from catalog data
// when the directions provider is unreachable or returned nothing. The path
// is a two-point origin|destination marker, not a routable polyline, so
// callers can present it as approximate. This never fails: the catalog is
// validated complete at load time.
func SynthesizeRoute(origin Coordinates, destination Destination) CandidateRoute {
	distanceMeters := int(math.Round(destination.BaseDistanceKm * 1000))
	durationSeconds := int(math.Round(destination.BaseDistanceKm / assumedSpeedKmh * 3600))

	return CandidateRoute{
		DistanceMeters:  distanceMeters,
		DurationSeconds: durationSeconds,
		Summary:         fmt.Sprintf("Direct estimate to %s", destination.Name),
		Path:            twoPointMarker(origin, destination.Coordinates),
		Synthesized:     true,
	}
}

// twoPointMarker encodes origin and destination as "lat,lng|lat,lng".
// Display-only: it marks a straight line, not a drivable path.
func twoPointMarker(origin, destination Coordinates) string {
	return fmt.Sprintf("%g,%g|%g,%g", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}
