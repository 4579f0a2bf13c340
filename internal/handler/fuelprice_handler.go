package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rutacostera/service-routes/internal/application"
	"github.com/rutacostera/service-routes/internal/platform/auth"
	"github.com/rutacostera/service-routes/internal/platform/middleware"
	"github.com/rutacostera/service-routes/internal/platform/response"
)

// FuelPriceHandler handles HTTP requests for fuel price operations.
type FuelPriceHandler struct {
	service *application.FuelPriceService
}

// NewFuelPriceHandler creates a new FuelPriceHandler.
func NewFuelPriceHandler(service *application.FuelPriceService) *FuelPriceHandler {
	return &FuelPriceHandler{service: service}
}

// RegisterRoutes registers all fuel price routes on the given router group.
// Reading prices requires authentication; writing requires the admin role.
func (h *FuelPriceHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	prices := r.Group("/api/v1/fuel-prices")
	prices.Use(middleware.AuthMiddleware(jwtManager))
	{
		prices.GET("", h.GetCurrentPrices)
		prices.GET("/history", h.GetPriceHistory)
		prices.POST("", middleware.RequireRole(auth.RoleAdmin), h.UpdatePrice)
	}
}

// GetCurrentPrices handles GET /api/v1/fuel-prices.
func (h *FuelPriceHandler) GetCurrentPrices(c *gin.Context) {
	result, err := h.service.GetCurrentPrices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetPriceHistory handles GET /api/v1/fuel-prices/history?fuel_type=...&days=30.
func (h *FuelPriceHandler) GetPriceHistory(c *gin.Context) {
	fuelType := c.Query("fuel_type")
	if fuelType == "" {
		response.BadRequest(c, "fuel_type query parameter is required")
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	result, err := h.service.GetPriceHistory(c.Request.Context(), fuelType, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdatePrice handles POST /api/v1/fuel-prices (admin only).
func (h *FuelPriceHandler) UpdatePrice(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdateFuelPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdatePrice(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
