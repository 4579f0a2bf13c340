package routing

import (
	"fmt"
	"math"
	"strings"
)

// EngineType is a vehicle's engine class; it determines both the base
// consumption rate and which fuel price applies.
type EngineType string

const (
	EngineGasoline EngineType = "gasoline"
	EngineDiesel   EngineType = "diesel"
)

// IsValid reports whether the engine type is a recognized value.
func (e EngineType) IsValid() bool {
	return e == EngineGasoline || e == EngineDiesel
}

// ParseEngineType converts a string to an EngineType, erroring on unknowns.
// Matching is case-insensitive.
func ParseEngineType(s string) (EngineType, error) {
	e := EngineType(strings.ToLower(s))
	if !e.IsValid() {
		return "", fmt.Errorf("invalid engine type: %s", s)
	}
	return e, nil
}

// baseConsumption is the engine's base rate in liters per 100 km.
var baseConsumption = map[EngineType]float64{
	EngineGasoline: 8.5,
	EngineDiesel:   6.5,
}

// trafficFactors scale consumption by live traffic level.
var trafficFactors = map[TrafficLevel]float64{
	TrafficLow:    1.0,
	TrafficMedium: 1.2,
	TrafficHigh:   1.4,
}

// routeFuelFactor reflects that only optimal routing optimizes for consumption.
func routeFuelFactor(routeType RouteType) float64 {
	if routeType == RouteOptimal {
		return 0.85
	}
	return 1.15
}

// EstimateFuelLiters computes trip fuel consumption in liters. The result is
// full precision; round only at the presentation boundary so cost derivation
// stays exact. The engine type must have been validated by the caller.
func EstimateFuelLiters(distanceKm float64, engine EngineType, level TrafficLevel, routeType RouteType) float64 {
	base := baseConsumption[engine]
	traffic, ok := trafficFactors[level]
	if !ok {
		traffic = trafficFactors[TrafficMedium]
	}
	return (distanceKm / 100.0) * base * traffic * routeFuelFactor(routeType)
}

// EstimateCost returns liters * pricePerLiter with no rounding. A
// non-positive price means the latest price record is unusable and the
// estimate must be rejected upstream.
func EstimateCost(liters, pricePerLiter float64) (float64, error) {
	if pricePerLiter <= 0 {
		return 0, fmt.Errorf("stale fuel price data: price per liter must be positive, got %g", pricePerLiter)
	}
	return liters * pricePerLiter, nil
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
