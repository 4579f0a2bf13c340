package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rutacostera/service-routes/internal/domain/routing"
	"github.com/rutacostera/service-routes/internal/platform/domain"
)

// EstimateModel is the GORM model for the route_estimates table.
type EstimateModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null"`
	VehicleID       uuid.UUID `gorm:"type:uuid;index;not null"`
	DestinationID   string    `gorm:"not null;size:50;index"`
	DestinationName string    `gorm:"not null;size:100"`
	OriginLat       float64   `gorm:"not null"`
	OriginLng       float64   `gorm:"not null"`
	DestinationLat  float64   `gorm:"not null"`
	DestinationLng  float64   `gorm:"not null"`
	DistanceKm      float64   `gorm:"not null"`
	DurationMinutes int       `gorm:"not null"`
	TrafficLevel    string    `gorm:"not null;size:10"`
	TrafficFactor   float64   `gorm:"not null"`
	FuelLiters      float64   `gorm:"not null"`
	PricePerLiter   float64   `gorm:"not null"`
	EstimatedCost   float64   `gorm:"not null"`
	RouteType       string    `gorm:"not null;size:20"`
	Path            string    `gorm:"type:text;not null"`
	Synthesized     bool      `gorm:"not null;default:false"`
	Status          string    `gorm:"not null;size:20;index"`
	Version         int64     `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (EstimateModel) TableName() string {
	return "route_estimates"
}

// GormEstimateRepository is the GORM-based implementation of EstimateRepository.
type GormEstimateRepository struct {
	db *gorm.DB
}

// NewGormEstimateRepository creates a new GormEstimateRepository.
func NewGormEstimateRepository(db *gorm.DB) *GormEstimateRepository {
	return &GormEstimateRepository{db: db}
}

// FindByID retrieves an estimate by its unique identifier.
func (r *GormEstimateRepository) FindByID(ctx context.Context, id uuid.UUID) (*routing.RouteEstimate, error) {
	var model EstimateModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("RouteEstimate", id.String())
		}
		return nil, fmt.Errorf("failed to find estimate by ID: %w", err)
	}
	return toDomainEstimate(&model), nil
}

// FindByUserID retrieves a user's estimates, newest first, with pagination.
func (r *GormEstimateRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*routing.RouteEstimate, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&EstimateModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count estimates: %w", err)
	}

	var models []EstimateModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find estimates: %w", err)
	}

	estimates := make([]*routing.RouteEstimate, len(models))
	for i, m := range models {
		estimates[i] = toDomainEstimate(&m)
	}
	return estimates, total, nil
}

// Save persists a new estimate.
func (r *GormEstimateRepository) Save(ctx context.Context, estimate *routing.RouteEstimate) error {
	model := toEstimateModel(estimate)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save estimate: %w", err)
	}
	return nil
}

// Update persists a status change with optimistic locking on the version column.
func (r *GormEstimateRepository) Update(ctx context.Context, estimate *routing.RouteEstimate) error {
	model := toEstimateModel(estimate)
	result := r.db.WithContext(ctx).
		Model(&EstimateModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update estimate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("estimate was modified concurrently")
	}
	return nil
}

func toEstimateModel(e *routing.RouteEstimate) *EstimateModel {
	return &EstimateModel{
		ID:              e.ID(),
		UserID:          e.UserID(),
		VehicleID:       e.VehicleID(),
		DestinationID:   e.DestinationID(),
		DestinationName: e.DestinationName(),
		OriginLat:       e.Origin().Lat,
		OriginLng:       e.Origin().Lng,
		DestinationLat:  e.Destination().Lat,
		DestinationLng:  e.Destination().Lng,
		DistanceKm:      e.DistanceKm(),
		DurationMinutes: e.DurationMinutes(),
		TrafficLevel:    string(e.TrafficLevel()),
		TrafficFactor:   e.TrafficFactor(),
		FuelLiters:      e.FuelLiters(),
		PricePerLiter:   e.PricePerLiter(),
		EstimatedCost:   e.EstimatedCost(),
		RouteType:       e.RouteType().String(),
		Path:            e.Path(),
		Synthesized:     e.Synthesized(),
		Status:          e.Status().String(),
		Version:         e.Version(),
		CreatedAt:       e.CreatedAt(),
		UpdatedAt:       e.UpdatedAt(),
	}
}

func toDomainEstimate(m *EstimateModel) *routing.RouteEstimate {
	return routing.ReconstructEstimate(
		m.ID, m.UserID, m.VehicleID,
		m.DestinationID, m.DestinationName,
		routing.Coordinates{Lat: m.OriginLat, Lng: m.OriginLng},
		routing.Coordinates{Lat: m.DestinationLat, Lng: m.DestinationLng},
		m.DistanceKm,
		m.DurationMinutes,
		routing.TrafficLevel(m.TrafficLevel),
		m.TrafficFactor,
		m.FuelLiters, m.PricePerLiter, m.EstimatedCost,
		routing.RouteType(m.RouteType),
		m.Path,
		m.Synthesized,
		routing.EstimateStatus(m.Status),
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
