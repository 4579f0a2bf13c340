package routing

import "math"

// selectionWeights are the (distance, duration) scoring weights per route
// type. Treated as business configuration: revise here, not at call sites.
var selectionWeights = map[RouteType][2]float64{
	RouteOptimal:  {0.4, 0.6},
	RouteEconomic: {0.7, 0.3},
	RouteFast:     {0.2, 0.8},
}

var defaultWeights = [2]float64{0.5, 0.5}

// durationCorrections close the gap between free-flow provider estimates and
// observed travel times per route type.
var durationCorrections = map[RouteType]float64{
	RouteOptimal:  1.10,
	RouteEconomic: 1.25,
	RouteFast:     0.90,
}

// score computes the weighted cost of a candidate; lower is better. The
// traffic-aware duration is preferred when the provider supplied one.
func score(c CandidateRoute, routeType RouteType) float64 {
	weights, ok := selectionWeights[routeType]
	if !ok {
		weights = defaultWeights
	}
	return float64(c.DistanceMeters)*weights[0] + float64(c.EffectiveDurationSeconds())*weights[1]
}

// SelectRoute picks the minimum-score candidate for the route type and applies
// the route type's duration correction to the winner. Ties keep the
// first-seen candidate, preserving the provider's ordering. Returns nil only
// for an empty candidate list. The correction is applied exactly once, after
// scoring, never before.
func SelectRoute(candidates []CandidateRoute, routeType RouteType) *CandidateRoute {
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	bestScore := score(best, routeType)
	for _, c := range candidates[1:] {
		if s := score(c, routeType); s < bestScore {
			best = c
			bestScore = s
		}
	}

	factor, ok := durationCorrections[routeType]
	if !ok {
		factor = 1.0
	}
	best.DurationSeconds = int(math.Round(float64(best.DurationSeconds) * factor))
	if best.DurationInTrafficS > 0 {
		best.DurationInTrafficS = int(math.Round(float64(best.DurationInTrafficS) * factor))
	}
	return &best
}
