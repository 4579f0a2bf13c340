package vehicle

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rutacostera/service-routes/internal/domain/routing"
)

// Vehicle is the aggregate root for a registered vehicle. The estimation core
// reads it only for its engine type.
type Vehicle struct {
	id         uuid.UUID
	ownerID    uuid.UUID
	brand      string
	model      string
	year       string
	engineType routing.EngineType
	engineSize string
	version    int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewVehicle creates a vehicle profile with validated fields.
func NewVehicle(ownerID uuid.UUID, brand, model, year string, engineType routing.EngineType, engineSize string) (*Vehicle, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("owner ID is required")
	}
	if brand == "" {
		return nil, fmt.Errorf("vehicle brand is required")
	}
	if model == "" {
		return nil, fmt.Errorf("vehicle model is required")
	}
	if !engineType.IsValid() {
		return nil, fmt.Errorf("invalid engine type: %s", engineType)
	}

	now := time.Now().UTC()
	return &Vehicle{
		id:         uuid.New(),
		ownerID:    ownerID,
		brand:      brand,
		model:      model,
		year:       year,
		engineType: engineType,
		engineSize: engineSize,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds a Vehicle from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	brand, model, year string,
	engineType routing.EngineType,
	engineSize string,
	version int64,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:         id,
		ownerID:    ownerID,
		brand:      brand,
		model:      model,
		year:       year,
		engineType: engineType,
		engineSize: engineSize,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// --- Getters ---

func (v *Vehicle) ID() uuid.UUID                  { return v.id }
func (v *Vehicle) OwnerID() uuid.UUID             { return v.ownerID }
func (v *Vehicle) Brand() string                  { return v.brand }
func (v *Vehicle) Model() string                  { return v.model }
func (v *Vehicle) Year() string                   { return v.year }
func (v *Vehicle) EngineType() routing.EngineType { return v.engineType }
func (v *Vehicle) EngineSize() string             { return v.engineSize }
func (v *Vehicle) Version() int64                 { return v.version }
func (v *Vehicle) CreatedAt() time.Time           { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time           { return v.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the vehicle belongs to the given account.
func (v *Vehicle) IsOwnedBy(ownerID uuid.UUID) bool {
	return v.ownerID == ownerID
}

// Update applies partial updates to the vehicle profile.
func (v *Vehicle) Update(brand, model, year string, engineType routing.EngineType, engineSize string) error {
	if engineType != "" && !engineType.IsValid() {
		return fmt.Errorf("invalid engine type: %s", engineType)
	}
	if brand != "" {
		v.brand = brand
	}
	if model != "" {
		v.model = model
	}
	if year != "" {
		v.year = year
	}
	if engineType != "" {
		v.engineType = engineType
	}
	if engineSize != "" {
		v.engineSize = engineSize
	}
	v.version++
	v.updatedAt = time.Now().UTC()
	return nil
}
