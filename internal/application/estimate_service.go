package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rutacostera/service-routes/internal/domain/fuelprice"
	"github.com/rutacostera/service-routes/internal/domain/routing"
	"github.com/rutacostera/service-routes/internal/domain/vehicle"
	"github.com/rutacostera/service-routes/internal/platform/domain"
	"github.com/rutacostera/service-routes/internal/platform/kafka"
)

// Event topics and types emitted by this service.
const (
	TopicRouteEvents = "route.events"
	RouteEstimated   = "route.estimated"

	eventSource = "service-routes"
)

// RouteEstimatedEvent is published after an estimate has been persisted.
type RouteEstimatedEvent struct {
	EstimateID    uuid.UUID `json:"estimate_id"`
	UserID        uuid.UUID `json:"user_id"`
	DestinationID string    `json:"destination_id"`
	RouteType     string    `json:"route_type"`
	DistanceKm    float64   `json:"distance_km"`
	FuelLiters    float64   `json:"fuel_liters"`
	EstimatedCost float64   `json:"estimated_cost"`
	Synthesized   bool      `json:"synthesized"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher is the outbound event port, satisfied by kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// CreateEstimateRequest holds the data needed to run one trip estimation.
type CreateEstimateRequest struct {
	DestinationID string `json:"destination_id" binding:"required"`
	VehicleID     string `json:"vehicle_id" binding:"required"`
	RouteType     string `json:"route_type"`
}

// EstimateSummary is the presentation companion to a persisted estimate.
type EstimateSummary struct {
	TrafficLevel       string  `json:"traffic_level"`
	TrafficDescription string  `json:"traffic_description"`
	FuelConsumption    float64 `json:"fuel_consumption"`
	PricePerLiter      float64 `json:"price_per_liter"`
	EstimatedCost      float64 `json:"estimated_cost"`
}

// EstimateDTO is the response representation of a route estimate.
type EstimateDTO struct {
	ID              uuid.UUID            `json:"id"`
	UserID          uuid.UUID            `json:"user_id"`
	VehicleID       uuid.UUID            `json:"vehicle_id"`
	DestinationID   string               `json:"destination_id"`
	DestinationName string               `json:"destination_name"`
	Origin          routing.Coordinates  `json:"origin"`
	Destination     routing.Coordinates  `json:"destination"`
	DistanceKm      float64              `json:"distance_km"`
	DurationMinutes int                  `json:"duration_minutes"`
	RouteType       string               `json:"route_type"`
	Path            string               `json:"path"`
	Synthesized     bool                 `json:"synthesized"`
	Status          string               `json:"status"`
	Summary         EstimateSummary      `json:"summary"`
	RouteDetails    *routing.RouteDetails `json:"route_details,omitempty"`
	Tips            []string             `json:"tips,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// EstimateService orchestrates trip estimation: validate, query the
// directions provider, select or synthesize a route, estimate fuel and cost,
// persist and publish.
type EstimateService struct {
	catalog         *routing.Catalog
	provider        routing.Provider
	providerTimeout time.Duration
	estimates       routing.EstimateRepository
	vehicles        vehicle.Repository
	fuelPrices      fuelprice.Repository
	publisher       EventPublisher
	logger          *zap.Logger
}

// NewEstimateService creates an EstimateService.
func NewEstimateService(
	catalog *routing.Catalog,
	provider routing.Provider,
	providerTimeout time.Duration,
	estimates routing.EstimateRepository,
	vehicles vehicle.Repository,
	fuelPrices fuelprice.Repository,
	publisher EventPublisher,
	logger *zap.Logger,
) *EstimateService {
	return &EstimateService{
		catalog:         catalog,
		provider:        provider,
		providerTimeout: providerTimeout,
		estimates:       estimates,
		vehicles:        vehicles,
		fuelPrices:      fuelPrices,
		publisher:       publisher,
		logger:          logger,
	}
}

// CreateEstimate runs the full estimation pipeline for the given account.
// Provider failure is never fatal: it degrades to a synthesized route. Only
// an unknown destination, an unknown vehicle or unusable price data reject
// the request.
func (s *EstimateService) CreateEstimate(ctx context.Context, userID uuid.UUID, req CreateEstimateRequest) (*EstimateDTO, error) {
	destination, ok := s.catalog.Lookup(req.DestinationID)
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"invalid destination %q, valid options: %s",
			req.DestinationID, strings.Join(s.catalog.IDs(), ", "),
		))
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, domain.NewValidationError("invalid vehicle ID")
	}
	veh, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !veh.IsOwnedBy(userID) {
		return nil, domain.NewNotFoundError("Vehicle", vehicleID.String())
	}

	price, err := s.fuelPrices.FindLatestByFuelType(ctx, veh.EngineType())
	if err != nil {
		return nil, err
	}
	if !price.IsUsable() {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"fuel price data for %s is stale, cannot derive cost", veh.EngineType(),
		))
	}

	routeType := routing.ParseRouteType(req.RouteType)
	now := time.Now()
	trafficLevel := routing.ClassifyHour(now.Hour())

	selected := s.obtainRoute(ctx, destination, routeType, now)

	fuelLiters := routing.EstimateFuelLiters(
		selected.DistanceKm(), veh.EngineType(), trafficLevel, routeType,
	)

	estimate, err := routing.NewRouteEstimate(
		userID, veh.ID(),
		destination,
		s.catalog.Origin(),
		*selected,
		trafficLevel,
		routing.TrafficMultiplier(destination, now),
		fuelLiters,
		price.PricePerLiter(),
		routeType,
	)
	if err != nil {
		return nil, err
	}

	if err := s.estimates.Save(ctx, estimate); err != nil {
		return nil, fmt.Errorf("failed to save estimate: %w", err)
	}

	s.publishRouteEstimated(ctx, estimate)

	dto := s.toEstimateDTO(estimate, true)
	return &dto, nil
}

// obtainRoute queries the provider within the configured timeout and selects
// the best candidate; any failure or empty result synthesizes a route from
// the catalog instead.
func (s *EstimateService) obtainRoute(ctx context.Context, destination routing.Destination, routeType routing.RouteType, now time.Time) *routing.CandidateRoute {
	query := routing.BuildProviderQuery(s.catalog.Origin(), destination.Coordinates, routeType, now)

	providerCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	candidates, err := s.provider.Routes(providerCtx, query)
	if err == nil {
		if selected := routing.SelectRoute(candidates, routeType); selected != nil {
			return selected
		}
		err = fmt.Errorf("provider returned no candidates")
	}

	s.logger.Warn("directions provider unavailable, synthesizing route",
		zap.String("destination", destination.ID),
		zap.Error(err),
	)
	synthesized := routing.SynthesizeRoute(s.catalog.Origin(), destination)
	return &synthesized
}

// GetEstimate retrieves one estimate, scoped to its owner.
func (s *EstimateService) GetEstimate(ctx context.Context, userID, estimateID uuid.UUID) (*EstimateDTO, error) {
	estimate, err := s.estimates.FindByID(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	if !estimate.IsOwnedBy(userID) {
		return nil, domain.NewNotFoundError("RouteEstimate", estimateID.String())
	}
	dto := s.toEstimateDTO(estimate, true)
	return &dto, nil
}

// EstimatePage is a page of estimate results.
type EstimatePage struct {
	Items []EstimateDTO
	Total int64
	Page  int
	Limit int
}

// GetUserEstimates retrieves the account's estimate history, newest first.
func (s *EstimateService) GetUserEstimates(ctx context.Context, userID uuid.UUID, page, limit int) (*EstimatePage, error) {
	estimates, total, err := s.estimates.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]EstimateDTO, len(estimates))
	for i, e := range estimates {
		items[i] = s.toEstimateDTO(e, false)
	}
	return &EstimatePage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// CompleteEstimate marks the trip as taken. Only the owner may do this.
func (s *EstimateService) CompleteEstimate(ctx context.Context, userID, estimateID uuid.UUID) (*EstimateDTO, error) {
	return s.transition(ctx, userID, estimateID, (*routing.RouteEstimate).Complete)
}

// CancelEstimate marks the trip as abandoned. Only the owner may do this.
func (s *EstimateService) CancelEstimate(ctx context.Context, userID, estimateID uuid.UUID) (*EstimateDTO, error) {
	return s.transition(ctx, userID, estimateID, (*routing.RouteEstimate).Cancel)
}

func (s *EstimateService) transition(ctx context.Context, userID, estimateID uuid.UUID, apply func(*routing.RouteEstimate) error) (*EstimateDTO, error) {
	estimate, err := s.estimates.FindByID(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	if !estimate.IsOwnedBy(userID) {
		return nil, domain.NewNotFoundError("RouteEstimate", estimateID.String())
	}

	if err := apply(estimate); err != nil {
		return nil, err
	}

	estimate.IncrementVersion()
	if err := s.estimates.Update(ctx, estimate); err != nil {
		return nil, err
	}

	dto := s.toEstimateDTO(estimate, false)
	return &dto, nil
}

func (s *EstimateService) publishRouteEstimated(ctx context.Context, e *routing.RouteEstimate) {
	evt := RouteEstimatedEvent{
		EstimateID:    e.ID(),
		UserID:        e.UserID(),
		DestinationID: e.DestinationID(),
		RouteType:     e.RouteType().String(),
		DistanceKm:    e.DistanceKm(),
		FuelLiters:    e.FuelLiters(),
		EstimatedCost: e.EstimatedCost(),
		Synthesized:   e.Synthesized(),
		OccurredAt:    time.Now().UTC(),
	}

	ce, err := kafka.NewCloudEvent(eventSource, RouteEstimated, evt)
	if err != nil {
		s.logger.Error("failed to build route estimated event", zap.Error(err))
		return
	}
	if err := s.publisher.PublishEvent(ctx, TopicRouteEvents, ce); err != nil {
		// Event delivery is best-effort; the estimate is already persisted.
		s.logger.Error("failed to publish route estimated event",
			zap.String("estimate_id", e.ID().String()),
			zap.Error(err),
		)
	}
}

// toEstimateDTO maps the aggregate to its response shape. Rounding of fuel
// and cost happens here, at the presentation boundary only.
func (s *EstimateService) toEstimateDTO(e *routing.RouteEstimate, withCatalogExtras bool) EstimateDTO {
	dto := EstimateDTO{
		ID:              e.ID(),
		UserID:          e.UserID(),
		VehicleID:       e.VehicleID(),
		DestinationID:   e.DestinationID(),
		DestinationName: e.DestinationName(),
		Origin:          e.Origin(),
		Destination:     e.Destination(),
		DistanceKm:      e.DistanceKm(),
		DurationMinutes: e.DurationMinutes(),
		RouteType:       e.RouteType().String(),
		Path:            e.Path(),
		Synthesized:     e.Synthesized(),
		Status:          e.Status().String(),
		Summary: EstimateSummary{
			TrafficLevel:       string(e.TrafficLevel()),
			TrafficDescription: e.TrafficLevel().Description(),
			FuelConsumption:    routing.Round2(e.FuelLiters()),
			PricePerLiter:      e.PricePerLiter(),
			EstimatedCost:      routing.Round2(e.EstimatedCost()),
		},
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}

	if withCatalogExtras {
		if destination, ok := s.catalog.Lookup(e.DestinationID()); ok {
			details := destination.RouteDetails
			dto.RouteDetails = &details
			dto.Tips = routing.GenerateTips(destination, e.CreatedAt())
		}
	}
	return dto
}
