package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rutacostera/service-routes/internal/domain/routing"
	vehicleDomain "github.com/rutacostera/service-routes/internal/domain/vehicle"
	"github.com/rutacostera/service-routes/internal/platform/domain"
)

// CreateVehicleRequest is the request DTO for registering a vehicle.
type CreateVehicleRequest struct {
	Brand      string `json:"brand" binding:"required"`
	Model      string `json:"model" binding:"required"`
	Year       string `json:"year"`
	EngineType string `json:"engine_type" binding:"required"`
	EngineSize string `json:"engine_size"`
}

// UpdateVehicleRequest is the request DTO for updating a vehicle.
type UpdateVehicleRequest struct {
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Year       string `json:"year"`
	EngineType string `json:"engine_type"`
	EngineSize string `json:"engine_size"`
}

// VehicleDTO is the response representation of a vehicle.
type VehicleDTO struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
	Year       string    `json:"year,omitempty"`
	EngineType string    `json:"engine_type"`
	EngineSize string    `json:"engine_size,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VehicleService handles vehicle registration and lookup use cases.
type VehicleService struct {
	repo   vehicleDomain.Repository
	logger *zap.Logger
}

// NewVehicleService creates a VehicleService.
func NewVehicleService(repo vehicleDomain.Repository, logger *zap.Logger) *VehicleService {
	return &VehicleService{repo: repo, logger: logger}
}

// CreateVehicle registers a vehicle for the given account.
func (s *VehicleService) CreateVehicle(ctx context.Context, ownerID uuid.UUID, req CreateVehicleRequest) (*VehicleDTO, error) {
	engineType, err := routing.ParseEngineType(req.EngineType)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	v, err := vehicleDomain.NewVehicle(ownerID, req.Brand, req.Model, req.Year, engineType, req.EngineSize)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle registered",
		zap.String("vehicle_id", v.ID().String()),
		zap.String("engine_type", string(v.EngineType())),
	)

	dto := toVehicleDTO(v)
	return &dto, nil
}

// GetVehicle retrieves one vehicle, scoped to its owner.
func (s *VehicleService) GetVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !v.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundError("Vehicle", vehicleID.String())
	}
	dto := toVehicleDTO(v)
	return &dto, nil
}

// GetOwnerVehicles retrieves all vehicles registered by an account.
func (s *VehicleService) GetOwnerVehicles(ctx context.Context, ownerID uuid.UUID) ([]VehicleDTO, error) {
	vehicles, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	dtos := make([]VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		dtos[i] = toVehicleDTO(v)
	}
	return dtos, nil
}

// GetDefaultVehicle retrieves the account's most recently registered vehicle.
func (s *VehicleService) GetDefaultVehicle(ctx context.Context, ownerID uuid.UUID) (*VehicleDTO, error) {
	v, err := s.repo.FindDefaultByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	dto := toVehicleDTO(v)
	return &dto, nil
}

// UpdateVehicle applies partial updates to an owned vehicle.
func (s *VehicleService) UpdateVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID, req UpdateVehicleRequest) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !v.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundError("Vehicle", vehicleID.String())
	}

	if err := v.Update(req.Brand, req.Model, req.Year, routing.EngineType(req.EngineType), req.EngineSize); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	dto := toVehicleDTO(v)
	return &dto, nil
}

// DeleteVehicle removes an owned vehicle.
func (s *VehicleService) DeleteVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) error {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if !v.IsOwnedBy(ownerID) {
		return domain.NewNotFoundError("Vehicle", vehicleID.String())
	}
	return s.repo.Delete(ctx, vehicleID)
}

func toVehicleDTO(v *vehicleDomain.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:         v.ID(),
		OwnerID:    v.OwnerID(),
		Brand:      v.Brand(),
		Model:      v.Model(),
		Year:       v.Year(),
		EngineType: string(v.EngineType()),
		EngineSize: v.EngineSize(),
		CreatedAt:  v.CreatedAt(),
		UpdatedAt:  v.UpdatedAt(),
	}
}
