package fuelprice

import (
	"context"
	"time"

	"github.com/rutacostera/service-routes/internal/domain/routing"
)

// Repository defines the persistence contract for fuel price records.
type Repository interface {
	// FindLatestByFuelType retrieves the most recent record for a fuel type.
	FindLatestByFuelType(ctx context.Context, fuelType routing.EngineType) (*FuelPrice, error)

	// FindHistory retrieves records for a fuel type since the given time,
	// oldest first.
	FindHistory(ctx context.Context, fuelType routing.EngineType, since time.Time) ([]*FuelPrice, error)

	// Count returns the total number of price records.
	Count(ctx context.Context) (int64, error)

	// Save appends a new price record.
	Save(ctx context.Context, price *FuelPrice) error
}
