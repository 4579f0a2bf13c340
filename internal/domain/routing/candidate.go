package routing

// CandidateRoute is one possible route between origin and destination, either
// returned by the directions provider or synthesized locally. Distances are
// meters and durations seconds, matching the provider's wire units.
type CandidateRoute struct {
	DistanceMeters     int
	DurationSeconds    int
	DurationInTrafficS int // 0 when the provider gave no traffic-aware duration
	Summary            string
	Path               string // encoded polyline, or a two-point marker when synthesized
	Synthesized        bool
}

// EffectiveDurationSeconds returns the traffic-aware duration when available,
// falling back to the free-flow duration.
func (c CandidateRoute) EffectiveDurationSeconds() int {
	if c.DurationInTrafficS > 0 {
		return c.DurationInTrafficS
	}
	return c.DurationSeconds
}

// DistanceKm returns the route distance in kilometers.
func (c CandidateRoute) DistanceKm() float64 {
	return float64(c.DistanceMeters) / 1000.0
}
