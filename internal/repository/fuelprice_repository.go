package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	fuelpriceDomain "github.com/rutacostera/service-routes/internal/domain/fuelprice"
	"github.com/rutacostera/service-routes/internal/domain/routing"
	"github.com/rutacostera/service-routes/internal/platform/domain"
)

// FuelPriceModel is the GORM model for the fuel_prices table. Records are
// append-only; the latest per fuel type is the current price.
type FuelPriceModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FuelType      string     `gorm:"not null;size:20;index"`
	PricePerLiter float64    `gorm:"not null"`
	UpdatedBy     *uuid.UUID `gorm:"type:uuid"`
	EffectiveAt   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (FuelPriceModel) TableName() string {
	return "fuel_prices"
}

// GormFuelPriceRepository is the GORM-based implementation of fuelprice.Repository.
type GormFuelPriceRepository struct {
	db *gorm.DB
}

// NewGormFuelPriceRepository creates a new GormFuelPriceRepository.
func NewGormFuelPriceRepository(db *gorm.DB) *GormFuelPriceRepository {
	return &GormFuelPriceRepository{db: db}
}

// FindLatestByFuelType retrieves the most recent record for a fuel type.
func (r *GormFuelPriceRepository) FindLatestByFuelType(ctx context.Context, fuelType routing.EngineType) (*fuelpriceDomain.FuelPrice, error) {
	var model FuelPriceModel
	if err := r.db.WithContext(ctx).
		Where("fuel_type = ?", string(fuelType)).
		Order("effective_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("FuelPrice", string(fuelType))
		}
		return nil, fmt.Errorf("failed to find fuel price: %w", err)
	}
	return toDomainFuelPrice(&model), nil
}

// FindHistory retrieves records for a fuel type since the given time, oldest first.
func (r *GormFuelPriceRepository) FindHistory(ctx context.Context, fuelType routing.EngineType, since time.Time) ([]*fuelpriceDomain.FuelPrice, error) {
	var models []FuelPriceModel
	if err := r.db.WithContext(ctx).
		Where("fuel_type = ? AND effective_at >= ?", string(fuelType), since).
		Order("effective_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find fuel price history: %w", err)
	}

	prices := make([]*fuelpriceDomain.FuelPrice, len(models))
	for i, m := range models {
		prices[i] = toDomainFuelPrice(&m)
	}
	return prices, nil
}

// Count returns the total number of price records.
func (r *GormFuelPriceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&FuelPriceModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count fuel prices: %w", err)
	}
	return total, nil
}

// Save appends a new price record.
func (r *GormFuelPriceRepository) Save(ctx context.Context, price *fuelpriceDomain.FuelPrice) error {
	model := &FuelPriceModel{
		ID:            price.ID(),
		FuelType:      string(price.FuelType()),
		PricePerLiter: price.PricePerLiter(),
		UpdatedBy:     price.UpdatedBy(),
		EffectiveAt:   price.EffectiveAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save fuel price: %w", err)
	}
	return nil
}

func toDomainFuelPrice(m *FuelPriceModel) *fuelpriceDomain.FuelPrice {
	return fuelpriceDomain.Reconstruct(
		m.ID,
		routing.EngineType(m.FuelType),
		m.PricePerLiter,
		m.UpdatedBy,
		m.EffectiveAt,
	)
}
