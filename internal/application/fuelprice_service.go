package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	fuelpriceDomain "github.com/rutacostera/service-routes/internal/domain/fuelprice"
	"github.com/rutacostera/service-routes/internal/domain/routing"
	"github.com/rutacostera/service-routes/internal/platform/domain"
)

// Prices seeded on first start when the table is empty, in CLP per liter.
var seedPrices = map[routing.EngineType]float64{
	routing.EngineGasoline: 1200,
	routing.EngineDiesel:   1000,
}

// UpdateFuelPriceRequest is the request DTO for recording a new price.
type UpdateFuelPriceRequest struct {
	FuelType      string  `json:"fuel_type" binding:"required"`
	PricePerLiter float64 `json:"price_per_liter" binding:"required"`
}

// FuelPriceDTO is the response representation of one price record.
type FuelPriceDTO struct {
	ID            uuid.UUID `json:"id"`
	FuelType      string    `json:"fuel_type"`
	PricePerLiter float64   `json:"price_per_liter"`
	EffectiveAt   time.Time `json:"effective_at"`
}

// FuelPriceService manages the append-only fuel price records.
type FuelPriceService struct {
	repo   fuelpriceDomain.Repository
	logger *zap.Logger
}

// NewFuelPriceService creates a FuelPriceService.
func NewFuelPriceService(repo fuelpriceDomain.Repository, logger *zap.Logger) *FuelPriceService {
	return &FuelPriceService{repo: repo, logger: logger}
}

// SeedInitialPrices inserts the default prices when no records exist yet.
// Failure is logged but not fatal: the service can start and prices can be
// set over the API afterwards.
func (s *FuelPriceService) SeedInitialPrices(ctx context.Context) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Warn("failed to check existing fuel prices, skipping seed", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	for fuelType, price := range seedPrices {
		record, err := fuelpriceDomain.NewFuelPrice(fuelType, price, nil)
		if err != nil {
			s.logger.Error("failed to build seed fuel price", zap.Error(err))
			continue
		}
		if err := s.repo.Save(ctx, record); err != nil {
			s.logger.Error("failed to seed fuel price",
				zap.String("fuel_type", string(fuelType)),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("seeded fuel price",
			zap.String("fuel_type", string(fuelType)),
			zap.Float64("price_per_liter", price),
		)
	}
}

// GetCurrentPrices returns the latest price per fuel type. Fuel types without
// any record are omitted.
func (s *FuelPriceService) GetCurrentPrices(ctx context.Context) (map[string]float64, error) {
	prices := make(map[string]float64)
	for _, fuelType := range []routing.EngineType{routing.EngineGasoline, routing.EngineDiesel} {
		record, err := s.repo.FindLatestByFuelType(ctx, fuelType)
		if err != nil {
			if domain.CodeOf(err) == domain.CodeNotFound {
				continue
			}
			return nil, err
		}
		prices[string(fuelType)] = record.PricePerLiter()
	}
	return prices, nil
}

// UpdatePrice appends a new price record attributed to the given admin.
func (s *FuelPriceService) UpdatePrice(ctx context.Context, updatedBy uuid.UUID, req UpdateFuelPriceRequest) (*FuelPriceDTO, error) {
	fuelType, err := routing.ParseEngineType(req.FuelType)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	record, err := fuelpriceDomain.NewFuelPrice(fuelType, req.PricePerLiter, &updatedBy)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("fuel price updated",
		zap.String("fuel_type", string(fuelType)),
		zap.Float64("price_per_liter", req.PricePerLiter),
		zap.String("updated_by", updatedBy.String()),
	)

	dto := toFuelPriceDTO(record)
	return &dto, nil
}

// ApplyExternalUpdate appends a price record received over the event bus.
func (s *FuelPriceService) ApplyExternalUpdate(ctx context.Context, fuelType routing.EngineType, pricePerLiter float64, updatedBy *uuid.UUID) error {
	record, err := fuelpriceDomain.NewFuelPrice(fuelType, pricePerLiter, updatedBy)
	if err != nil {
		return domain.NewValidationError(err.Error())
	}
	return s.repo.Save(ctx, record)
}

// GetPriceHistory returns price records for a fuel type over the last days.
func (s *FuelPriceService) GetPriceHistory(ctx context.Context, fuelTypeRaw string, days int) ([]FuelPriceDTO, error) {
	fuelType, err := routing.ParseEngineType(fuelTypeRaw)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if days <= 0 {
		days = 30
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	records, err := s.repo.FindHistory(ctx, fuelType, since)
	if err != nil {
		return nil, err
	}

	dtos := make([]FuelPriceDTO, len(records))
	for i, r := range records {
		dtos[i] = toFuelPriceDTO(r)
	}
	return dtos, nil
}

func toFuelPriceDTO(p *fuelpriceDomain.FuelPrice) FuelPriceDTO {
	return FuelPriceDTO{
		ID:            p.ID(),
		FuelType:      string(p.FuelType()),
		PricePerLiter: p.PricePerLiter(),
		EffectiveAt:   p.EffectiveAt(),
	}
}
