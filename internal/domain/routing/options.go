package routing

import (
	"context"
	"time"
)

// TrafficModel is the provider's traffic prediction hint.
type TrafficModel string

const (
	TrafficModelBestGuess   TrafficModel = "best_guess"
	TrafficModelPessimistic TrafficModel = "pessimistic"
	TrafficModelOptimistic  TrafficModel = "optimistic"
)

// Avoidance values understood by the directions provider.
const (
	AvoidTolls    = "tolls"
	AvoidHighways = "highways"
)

// ProviderQuery is the provider-agnostic directions request built from a
// route-type preference.
type ProviderQuery struct {
	Origin        Coordinates
	Destination   Coordinates
	Mode          string
	Alternatives  bool
	DepartureTime time.Time
	TrafficModel  TrafficModel
	Avoid         []string
	Region        string
}

// Provider returns candidate routes for a query. Implementations must honor
// context cancellation; an error or an empty slice triggers local synthesis.
type Provider interface {
	Routes(ctx context.Context, query ProviderQuery) ([]CandidateRoute, error)
}

// BuildProviderQuery maps a route-type preference to a provider query. Every
// query requests driving directions with alternatives at the given departure
// time; economic additionally avoids tolls and highways with a pessimistic
// traffic model, fast uses an optimistic model, and everything else (including
// unrecognized route types) gets the optimal best-guess behavior.
func BuildProviderQuery(origin, destination Coordinates, routeType RouteType, departureTime time.Time) ProviderQuery {
	query := ProviderQuery{
		Origin:        origin,
		Destination:   destination,
		Mode:          "driving",
		Alternatives:  true,
		DepartureTime: departureTime,
		Region:        "cl",
	}

	switch routeType {
	case RouteEconomic:
		query.TrafficModel = TrafficModelPessimistic
		query.Avoid = []string{AvoidTolls, AvoidHighways}
	case RouteFast:
		query.TrafficModel = TrafficModelOptimistic
	default:
		query.TrafficModel = TrafficModelBestGuess
	}
	return query
}
