package routing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEstimate(t *testing.T) *RouteEstimate {
	t.Helper()
	catalog := DefaultCatalog()
	dest, ok := catalog.Lookup("iloca")
	require.True(t, ok)

	route := SynthesizeRoute(catalog.Origin(), dest)
	estimate, err := NewRouteEstimate(
		uuid.New(), uuid.New(),
		dest, catalog.Origin(), route,
		TrafficMedium, 1.2,
		12.5, 1200,
		RouteOptimal,
	)
	require.NoError(t, err)
	return estimate
}

func TestNewRouteEstimate(t *testing.T) {
	userID := uuid.New()
	vehicleID := uuid.New()
	catalog := DefaultCatalog()
	dest, ok := catalog.Lookup("iloca")
	require.True(t, ok)
	route := SynthesizeRoute(catalog.Origin(), dest)

	estimate, err := NewRouteEstimate(
		userID, vehicleID,
		dest, catalog.Origin(), route,
		TrafficMedium, 1.2,
		12.5, 1200,
		RouteOptimal,
	)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, estimate.ID())
	assert.Equal(t, userID, estimate.UserID())
	assert.Equal(t, vehicleID, estimate.VehicleID())
	assert.Equal(t, "iloca", estimate.DestinationID())
	assert.Equal(t, "Iloca", estimate.DestinationName())
	assert.Equal(t, 147.0, estimate.DistanceKm())
	// 7056 seconds rounds up to 118 minutes.
	assert.Equal(t, 118, estimate.DurationMinutes())
	assert.Equal(t, StatusActive, estimate.Status())
	assert.Equal(t, int64(1), estimate.Version())
	assert.True(t, estimate.Synthesized())
	// Cost holds the liters * price invariant by construction.
	assert.InDelta(t, 12.5*1200, estimate.EstimatedCost(), 1e-9)
}

func TestNewRouteEstimate_Validation(t *testing.T) {
	catalog := DefaultCatalog()
	dest, _ := catalog.Lookup("iloca")
	route := SynthesizeRoute(catalog.Origin(), dest)

	_, err := NewRouteEstimate(uuid.Nil, uuid.New(), dest, catalog.Origin(), route,
		TrafficLow, 1.0, 10, 1200, RouteOptimal)
	assert.Error(t, err)

	_, err = NewRouteEstimate(uuid.New(), uuid.Nil, dest, catalog.Origin(), route,
		TrafficLow, 1.0, 10, 1200, RouteOptimal)
	assert.Error(t, err)

	_, err = NewRouteEstimate(uuid.New(), uuid.New(), dest, catalog.Origin(), route,
		TrafficLow, 1.0, -1, 1200, RouteOptimal)
	assert.Error(t, err)

	_, err = NewRouteEstimate(uuid.New(), uuid.New(), dest, catalog.Origin(), route,
		TrafficLow, 1.0, 10, 0, RouteOptimal)
	assert.Error(t, err)
}

func TestRouteEstimate_Complete(t *testing.T) {
	estimate := newTestEstimate(t)

	require.NoError(t, estimate.Complete())
	assert.Equal(t, StatusCompleted, estimate.Status())

	// Completed is terminal.
	assert.Error(t, estimate.Complete())
	assert.Error(t, estimate.Cancel())
}

func TestRouteEstimate_Cancel(t *testing.T) {
	estimate := newTestEstimate(t)

	require.NoError(t, estimate.Cancel())
	assert.Equal(t, StatusCancelled, estimate.Status())
	assert.Error(t, estimate.Complete())
}

func TestRouteEstimate_IsOwnedBy(t *testing.T) {
	estimate := newTestEstimate(t)

	assert.True(t, estimate.IsOwnedBy(estimate.UserID()))
	assert.False(t, estimate.IsOwnedBy(uuid.New()))
}

func TestEstimateStatusTransitions(t *testing.T) {
	assert.True(t, StatusActive.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusActive.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusActive))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCompleted))

	assert.False(t, StatusActive.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseEstimateStatus(t *testing.T) {
	status, err := ParseEstimateStatus("active")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, status)

	_, err = ParseEstimateStatus("archived")
	assert.Error(t, err)
}
