package fuelprice

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rutacostera/service-routes/internal/domain/routing"
)

// FuelPrice is one append-only price record for a fuel type. The estimation
// core always reads the most recent record per fuel type.
type FuelPrice struct {
	id            uuid.UUID
	fuelType      routing.EngineType
	pricePerLiter float64
	updatedBy     *uuid.UUID
	effectiveAt   time.Time
}

// NewFuelPrice creates a price record effective now. updatedBy is nil for
// system-seeded prices.
func NewFuelPrice(fuelType routing.EngineType, pricePerLiter float64, updatedBy *uuid.UUID) (*FuelPrice, error) {
	if !fuelType.IsValid() {
		return nil, fmt.Errorf("invalid fuel type: %s", fuelType)
	}
	if pricePerLiter <= 0 {
		return nil, fmt.Errorf("price per liter must be positive")
	}
	return &FuelPrice{
		id:            uuid.New(),
		fuelType:      fuelType,
		pricePerLiter: pricePerLiter,
		updatedBy:     updatedBy,
		effectiveAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a FuelPrice from persistence data (no validation).
func Reconstruct(id uuid.UUID, fuelType routing.EngineType, pricePerLiter float64, updatedBy *uuid.UUID, effectiveAt time.Time) *FuelPrice {
	return &FuelPrice{
		id:            id,
		fuelType:      fuelType,
		pricePerLiter: pricePerLiter,
		updatedBy:     updatedBy,
		effectiveAt:   effectiveAt,
	}
}

func (p *FuelPrice) ID() uuid.UUID                 { return p.id }
func (p *FuelPrice) FuelType() routing.EngineType  { return p.fuelType }
func (p *FuelPrice) PricePerLiter() float64        { return p.pricePerLiter }
func (p *FuelPrice) UpdatedBy() *uuid.UUID         { return p.updatedBy }
func (p *FuelPrice) EffectiveAt() time.Time        { return p.effectiveAt }

// IsUsable reports whether the record can back a cost estimate.
func (p *FuelPrice) IsUsable() bool {
	return p.pricePerLiter > 0
}
