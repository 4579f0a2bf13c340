package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rutacostera/service-routes/internal/domain/fuelprice"
	"github.com/rutacostera/service-routes/internal/domain/routing"
	platformdomain "github.com/rutacostera/service-routes/internal/platform/domain"
)

func TestSeedInitialPrices_EmptyTable(t *testing.T) {
	repo := newFakeFuelPriceRepo()
	service := NewFuelPriceService(repo, zap.NewNop())

	service.SeedInitialPrices(context.Background())

	prices, err := service.GetCurrentPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1200.0, prices["gasoline"])
	assert.Equal(t, 1000.0, prices["diesel"])
}

func TestSeedInitialPrices_SkipsWhenRecordsExist(t *testing.T) {
	repo := newFakeFuelPriceRepo()
	existing, err := fuelprice.NewFuelPrice(routing.EngineGasoline, 1350, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), existing))

	service := NewFuelPriceService(repo, zap.NewNop())
	service.SeedInitialPrices(context.Background())

	prices, err := service.GetCurrentPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1350.0, prices["gasoline"])
	// Diesel was never seeded because the table was not empty.
	_, ok := prices["diesel"]
	assert.False(t, ok)
}

func TestUpdatePrice(t *testing.T) {
	repo := newFakeFuelPriceRepo()
	service := NewFuelPriceService(repo, zap.NewNop())
	adminID := uuid.New()

	dto, err := service.UpdatePrice(context.Background(), adminID, UpdateFuelPriceRequest{
		FuelType:      "diesel",
		PricePerLiter: 1050,
	})
	require.NoError(t, err)
	assert.Equal(t, "diesel", dto.FuelType)
	assert.Equal(t, 1050.0, dto.PricePerLiter)

	prices, err := service.GetCurrentPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1050.0, prices["diesel"])
}

func TestUpdatePrice_Validation(t *testing.T) {
	service := NewFuelPriceService(newFakeFuelPriceRepo(), zap.NewNop())

	_, err := service.UpdatePrice(context.Background(), uuid.New(), UpdateFuelPriceRequest{
		FuelType:      "kerosene",
		PricePerLiter: 900,
	})
	require.Error(t, err)
	assert.Equal(t, platformdomain.CodeValidation, platformdomain.CodeOf(err))

	_, err = service.UpdatePrice(context.Background(), uuid.New(), UpdateFuelPriceRequest{
		FuelType:      "gasoline",
		PricePerLiter: -10,
	})
	require.Error(t, err)
	assert.Equal(t, platformdomain.CodeValidation, platformdomain.CodeOf(err))
}

func TestApplyExternalUpdate(t *testing.T) {
	repo := newFakeFuelPriceRepo()
	service := NewFuelPriceService(repo, zap.NewNop())

	err := service.ApplyExternalUpdate(context.Background(), routing.EngineGasoline, 1280, nil)
	require.NoError(t, err)

	prices, err := service.GetCurrentPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1280.0, prices["gasoline"])

	err = service.ApplyExternalUpdate(context.Background(), routing.EngineGasoline, -1, nil)
	assert.Error(t, err)
}

func TestGetPriceHistory(t *testing.T) {
	repo := newFakeFuelPriceRepo()
	service := NewFuelPriceService(repo, zap.NewNop())
	service.SeedInitialPrices(context.Background())

	history, err := service.GetPriceHistory(context.Background(), "gasoline", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "gasoline", history[0].FuelType)

	_, err = service.GetPriceHistory(context.Background(), "jetfuel", 30)
	assert.Error(t, err)
}
