package vehicle

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for vehicles.
type Repository interface {
	// FindByID retrieves a vehicle by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)

	// FindByOwnerID retrieves all vehicles registered by an account, newest first.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Vehicle, error)

	// FindDefaultByOwnerID retrieves the most recently registered vehicle.
	FindDefaultByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Vehicle, error)

	// Save persists a new vehicle.
	Save(ctx context.Context, v *Vehicle) error

	// Update persists changes to an existing vehicle.
	Update(ctx context.Context, v *Vehicle) error

	// Delete removes a vehicle.
	Delete(ctx context.Context, id uuid.UUID) error
}
