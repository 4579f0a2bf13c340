package routing

import "strings"

// RouteType is the caller's optimization preference. It shapes both the
// provider query and the candidate scoring weights.
type RouteType string

const (
	RouteOptimal  RouteType = "optimal"
	RouteEconomic RouteType = "economic"
	RouteFast     RouteType = "fast"
)

// ParseRouteType normalizes a requested route type. Matching is
// case-insensitive and the legacy value "fastest" maps to fast; empty or
// unrecognized values fall back to optimal rather than failing.
func ParseRouteType(s string) RouteType {
	switch strings.ToLower(s) {
	case string(RouteOptimal):
		return RouteOptimal
	case string(RouteEconomic):
		return RouteEconomic
	case string(RouteFast), "fastest":
		return RouteFast
	default:
		return RouteOptimal
	}
}

// String returns the string representation of the route type.
func (t RouteType) String() string {
	return string(t)
}
