package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rutacostera/service-routes/internal/domain/routing"
	vehicleDomain "github.com/rutacostera/service-routes/internal/domain/vehicle"
	"github.com/rutacostera/service-routes/internal/platform/domain"
)

// VehicleModel is the GORM model for the vehicles table.
type VehicleModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Brand      string    `gorm:"not null;size:50"`
	Model      string    `gorm:"not null;size:50"`
	Year       string    `gorm:"size:10"`
	EngineType string    `gorm:"not null;size:20"`
	EngineSize string    `gorm:"size:20"`
	Version    int64     `gorm:"not null;default:1"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (VehicleModel) TableName() string {
	return "vehicles"
}

// GormVehicleRepository is the GORM-based implementation of vehicle.Repository.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID retrieves a vehicle by its unique identifier.
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*vehicleDomain.Vehicle, error) {
	var model VehicleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Vehicle", id.String())
		}
		return nil, fmt.Errorf("failed to find vehicle by ID: %w", err)
	}
	return toDomainVehicle(&model), nil
}

// FindByOwnerID retrieves all vehicles registered by an account, newest first.
func (r *GormVehicleRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*vehicleDomain.Vehicle, error) {
	var models []VehicleModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find vehicles: %w", err)
	}

	vehicles := make([]*vehicleDomain.Vehicle, len(models))
	for i, m := range models {
		vehicles[i] = toDomainVehicle(&m)
	}
	return vehicles, nil
}

// FindDefaultByOwnerID retrieves the most recently registered vehicle.
func (r *GormVehicleRepository) FindDefaultByOwnerID(ctx context.Context, ownerID uuid.UUID) (*vehicleDomain.Vehicle, error) {
	var model VehicleModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Vehicle", "default for "+ownerID.String())
		}
		return nil, fmt.Errorf("failed to find default vehicle: %w", err)
	}
	return toDomainVehicle(&model), nil
}

// Save persists a new vehicle.
func (r *GormVehicleRepository) Save(ctx context.Context, v *vehicleDomain.Vehicle) error {
	if err := r.db.WithContext(ctx).Create(toVehicleModel(v)).Error; err != nil {
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	return nil
}

// Update persists changes to an existing vehicle with optimistic locking.
func (r *GormVehicleRepository) Update(ctx context.Context, v *vehicleDomain.Vehicle) error {
	model := toVehicleModel(v)
	result := r.db.WithContext(ctx).
		Model(&VehicleModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"brand":       model.Brand,
			"model":       model.Model,
			"year":        model.Year,
			"engine_type": model.EngineType,
			"engine_size": model.EngineSize,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("vehicle was modified concurrently")
	}
	return nil
}

// Delete removes a vehicle.
func (r *GormVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&VehicleModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Vehicle", id.String())
	}
	return nil
}

func toVehicleModel(v *vehicleDomain.Vehicle) *VehicleModel {
	return &VehicleModel{
		ID:         v.ID(),
		OwnerID:    v.OwnerID(),
		Brand:      v.Brand(),
		Model:      v.Model(),
		Year:       v.Year(),
		EngineType: string(v.EngineType()),
		EngineSize: v.EngineSize(),
		Version:    v.Version(),
		CreatedAt:  v.CreatedAt(),
		UpdatedAt:  v.UpdatedAt(),
	}
}

func toDomainVehicle(m *VehicleModel) *vehicleDomain.Vehicle {
	return vehicleDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Brand, m.Model, m.Year,
		routing.EngineType(m.EngineType),
		m.EngineSize,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
