package routing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rutacostera/service-routes/internal/platform/domain"
)

// RouteEstimate is the aggregate root for one completed trip estimation. All
// trip metrics are fixed at creation; only the status field changes afterwards.
type RouteEstimate struct {
	id              uuid.UUID
	userID          uuid.UUID
	vehicleID       uuid.UUID
	destinationID   string
	destinationName string
	origin          Coordinates
	destination     Coordinates
	distanceKm      float64
	durationMinutes int
	trafficLevel    TrafficLevel
	trafficFactor   float64
	fuelLiters      float64
	pricePerLiter   float64
	estimatedCost   float64
	routeType       RouteType
	path            string
	synthesized     bool
	status          EstimateStatus
	version         int64
	createdAt       time.Time
	updatedAt       time.Time
}

// NewRouteEstimate assembles an estimate from the selected route and the fuel
// math inputs. The cost is derived here from liters and price so the
// cost == liters * price invariant holds by construction.
func NewRouteEstimate(
	userID, vehicleID uuid.UUID,
	destination Destination,
	origin Coordinates,
	route CandidateRoute,
	trafficLevel TrafficLevel,
	trafficFactor float64,
	fuelLiters float64,
	pricePerLiter float64,
	routeType RouteType,
) (*RouteEstimate, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if vehicleID == uuid.Nil {
		return nil, domain.NewValidationError("vehicle ID is required")
	}
	if fuelLiters < 0 {
		return nil, domain.NewValidationError("fuel consumption cannot be negative")
	}

	cost, err := EstimateCost(fuelLiters, pricePerLiter)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	now := time.Now().UTC()
	return &RouteEstimate{
		id:              uuid.New(),
		userID:          userID,
		vehicleID:       vehicleID,
		destinationID:   destination.ID,
		destinationName: destination.Name,
		origin:          origin,
		destination:     destination.Coordinates,
		distanceKm:      route.DistanceKm(),
		durationMinutes: (route.EffectiveDurationSeconds() + 30) / 60,
		trafficLevel:    trafficLevel,
		trafficFactor:   trafficFactor,
		fuelLiters:      fuelLiters,
		pricePerLiter:   pricePerLiter,
		estimatedCost:   cost,
		routeType:       routeType,
		path:            route.Path,
		synthesized:     route.Synthesized,
		status:          StatusActive,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructEstimate rebuilds a RouteEstimate from persistence (no validation).
func ReconstructEstimate(
	id, userID, vehicleID uuid.UUID,
	destinationID, destinationName string,
	origin, destination Coordinates,
	distanceKm float64,
	durationMinutes int,
	trafficLevel TrafficLevel,
	trafficFactor float64,
	fuelLiters, pricePerLiter, estimatedCost float64,
	routeType RouteType,
	path string,
	synthesized bool,
	status EstimateStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *RouteEstimate {
	return &RouteEstimate{
		id:              id,
		userID:          userID,
		vehicleID:       vehicleID,
		destinationID:   destinationID,
		destinationName: destinationName,
		origin:          origin,
		destination:     destination,
		distanceKm:      distanceKm,
		durationMinutes: durationMinutes,
		trafficLevel:    trafficLevel,
		trafficFactor:   trafficFactor,
		fuelLiters:      fuelLiters,
		pricePerLiter:   pricePerLiter,
		estimatedCost:   estimatedCost,
		routeType:       routeType,
		path:            path,
		synthesized:     synthesized,
		status:          status,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

func (e *RouteEstimate) ID() uuid.UUID                { return e.id }
func (e *RouteEstimate) UserID() uuid.UUID            { return e.userID }
func (e *RouteEstimate) VehicleID() uuid.UUID         { return e.vehicleID }
func (e *RouteEstimate) DestinationID() string        { return e.destinationID }
func (e *RouteEstimate) DestinationName() string      { return e.destinationName }
func (e *RouteEstimate) Origin() Coordinates          { return e.origin }
func (e *RouteEstimate) Destination() Coordinates     { return e.destination }
func (e *RouteEstimate) DistanceKm() float64          { return e.distanceKm }
func (e *RouteEstimate) DurationMinutes() int         { return e.durationMinutes }
func (e *RouteEstimate) TrafficLevel() TrafficLevel   { return e.trafficLevel }
func (e *RouteEstimate) TrafficFactor() float64       { return e.trafficFactor }
func (e *RouteEstimate) FuelLiters() float64          { return e.fuelLiters }
func (e *RouteEstimate) PricePerLiter() float64       { return e.pricePerLiter }
func (e *RouteEstimate) EstimatedCost() float64       { return e.estimatedCost }
func (e *RouteEstimate) RouteType() RouteType         { return e.routeType }
func (e *RouteEstimate) Path() string                 { return e.path }
func (e *RouteEstimate) Synthesized() bool            { return e.synthesized }
func (e *RouteEstimate) Status() EstimateStatus       { return e.status }
func (e *RouteEstimate) Version() int64               { return e.version }
func (e *RouteEstimate) CreatedAt() time.Time         { return e.createdAt }
func (e *RouteEstimate) UpdatedAt() time.Time         { return e.updatedAt }

// --- Behavior ---

// IsOwnedBy checks whether the estimate belongs to the given account.
func (e *RouteEstimate) IsOwnedBy(userID uuid.UUID) bool {
	return e.userID == userID
}

// Complete marks the trip as taken.
func (e *RouteEstimate) Complete() error {
	if !e.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(e.status), string(StatusCompleted))
	}
	e.status = StatusCompleted
	e.updatedAt = time.Now().UTC()
	return nil
}

// Cancel marks the trip as abandoned.
func (e *RouteEstimate) Cancel() error {
	if !e.status.CanTransitionTo(StatusCancelled) {
		return domain.NewInvalidStateError(string(e.status), string(StatusCancelled))
	}
	e.status = StatusCancelled
	e.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (e *RouteEstimate) IncrementVersion() {
	e.version++
	e.updatedAt = time.Now().UTC()
}

// EstimateRepository defines the persistence contract for route estimates.
type EstimateRepository interface {
	// FindByID retrieves an estimate by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*RouteEstimate, error)

	// FindByUserID retrieves a user's estimates, newest first, with pagination.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*RouteEstimate, int64, error)

	// Save persists a new estimate.
	Save(ctx context.Context, estimate *RouteEstimate) error

	// Update persists a status change with optimistic locking.
	Update(ctx context.Context, estimate *RouteEstimate) error
}
