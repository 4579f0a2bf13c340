//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutacostera/service-routes/internal/application"
	routeEvents "github.com/rutacostera/service-routes/internal/events"
)

// TestFuelPriceUpdate_FlowsIntoEstimate verifies that an external price update
// published to fuelprice.events is consumed and applied, and that a subsequent
// estimate uses the new price and emits a route.estimated event.
func TestFuelPriceUpdate_FlowsIntoEstimate(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRoutesStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.PriceConsumer.Close() }()

	// Seed defaults, then prepare an account with a vehicle.
	stack.FuelPrices.SeedInitialPrices(context.Background())
	userID := uuid.New()
	vehicleID := seedVehicle(t, stack.Vehicles, userID)

	// Start the price consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.PriceConsumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Publish an external gasoline price update.
	evt := routeEvents.FuelPriceUpdatedEvent{
		FuelType:      "gasoline",
		PricePerLiter: 1350,
	}
	publishTestEvent(t, infra.KafkaBrokers, routeEvents.TopicFuelPriceEvents,
		"market-feed", routeEvents.FuelPriceUpdated, evt)

	// Assert: the new price lands in the fuel_prices table.
	waitForFuelPrice(t, infra.DB, "gasoline", 1350, 15*time.Second)

	// Create an estimate; the directions provider is offline, so the route is
	// synthesized from the catalog and priced with the updated value.
	dto, err := stack.Estimates.CreateEstimate(context.Background(), userID, application.CreateEstimateRequest{
		DestinationID: "iloca",
		VehicleID:     vehicleID.String(),
		RouteType:     "optimal",
	})
	require.NoError(t, err)
	assert.True(t, dto.Synthesized)
	assert.Equal(t, 147.0, dto.DistanceKm)
	assert.Equal(t, 1350.0, dto.Summary.PricePerLiter)
	assert.Equal(t, "active", dto.Status)

	// Assert: RouteEstimatedEvent on route.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, application.TopicRouteEvents,
		application.RouteEstimated, 15*time.Second)

	var estimated application.RouteEstimatedEvent
	require.NoError(t, ce.ParseData(&estimated))
	assert.Equal(t, dto.ID, estimated.EstimateID)
	assert.Equal(t, userID, estimated.UserID)
	assert.Equal(t, "iloca", estimated.DestinationID)
	assert.True(t, estimated.Synthesized)
}
