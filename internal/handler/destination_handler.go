package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rutacostera/service-routes/internal/domain/routing"
	"github.com/rutacostera/service-routes/internal/platform/domain"
	"github.com/rutacostera/service-routes/internal/platform/response"
)

// DestinationDTO is the read model for a catalog destination.
type DestinationDTO struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Coordinates    routing.Coordinates `json:"coordinates"`
	BaseDistanceKm float64             `json:"base_distance_km"`
	Stops          []string            `json:"stops"`
	RoadType       string              `json:"road_type"`
	Difficulty     string              `json:"difficulty"`
}

// CatalogDTO is the read model for the destination catalog.
type CatalogDTO struct {
	Origin       routing.Coordinates `json:"origin"`
	OriginName   string              `json:"origin_name"`
	Destinations []DestinationDTO    `json:"destinations"`
}

// DestinationHandler serves the fixed destination catalog.
type DestinationHandler struct {
	catalog *routing.Catalog
}

// NewDestinationHandler creates a new DestinationHandler.
func NewDestinationHandler(catalog *routing.Catalog) *DestinationHandler {
	return &DestinationHandler{catalog: catalog}
}

// RegisterRoutes registers the catalog routes. They are public and read only.
func (h *DestinationHandler) RegisterRoutes(r *gin.RouterGroup) {
	destinations := r.Group("/api/v1/destinations")
	{
		destinations.GET("", h.GetCatalog)
		destinations.GET("/:id", h.GetDestination)
	}
}

// GetCatalog handles GET /api/v1/destinations.
func (h *DestinationHandler) GetCatalog(c *gin.Context) {
	all := h.catalog.All()
	dtos := make([]DestinationDTO, 0, len(all))
	for _, d := range all {
		dtos = append(dtos, toDestinationDTO(d))
	}
	response.Success(c, CatalogDTO{
		Origin:       h.catalog.Origin(),
		OriginName:   h.catalog.OriginName(),
		Destinations: dtos,
	})
}

// GetDestination handles GET /api/v1/destinations/:id.
func (h *DestinationHandler) GetDestination(c *gin.Context) {
	dest, ok := h.catalog.Lookup(c.Param("id"))
	if !ok {
		response.Error(c, domain.NewNotFoundError("destination", c.Param("id")))
		return
	}
	response.Success(c, toDestinationDTO(dest))
}

func toDestinationDTO(d routing.Destination) DestinationDTO {
	return DestinationDTO{
		ID:             d.ID,
		Name:           d.Name,
		Coordinates:    d.Coordinates,
		BaseDistanceKm: d.BaseDistanceKm,
		Stops:          d.RouteDetails.Stops,
		RoadType:       d.RouteDetails.RoadType,
		Difficulty:     d.RouteDetails.Difficulty,
	}
}
