package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rutacostera/service-routes/internal/application"
	"github.com/rutacostera/service-routes/internal/platform/auth"
	"github.com/rutacostera/service-routes/internal/platform/middleware"
	"github.com/rutacostera/service-routes/internal/platform/response"
)

// EstimateHandler handles HTTP requests for route estimation operations.
type EstimateHandler struct {
	service *application.EstimateService
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(service *application.EstimateService) *EstimateHandler {
	return &EstimateHandler{service: service}
}

// RegisterRoutes registers all estimate routes on the given router group.
func (h *EstimateHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	estimates := r.Group("/api/v1/estimates")
	estimates.Use(middleware.AuthMiddleware(jwtManager))
	{
		estimates.POST("", h.CreateEstimate)
		estimates.GET("", h.ListEstimates)
		estimates.GET("/:id", h.GetEstimate)
		estimates.POST("/:id/complete", h.CompleteEstimate)
		estimates.POST("/:id/cancel", h.CancelEstimate)
	}
}

// CreateEstimate handles POST /api/v1/estimates.
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateEstimate(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListEstimates handles GET /api/v1/estimates.
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	result, err := h.service.GetUserEstimates(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetEstimate handles GET /api/v1/estimates/:id.
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	h.withOwnedEstimate(c, h.service.GetEstimate)
}

// CompleteEstimate handles POST /api/v1/estimates/:id/complete.
func (h *EstimateHandler) CompleteEstimate(c *gin.Context) {
	h.withOwnedEstimate(c, h.service.CompleteEstimate)
}

// CancelEstimate handles POST /api/v1/estimates/:id/cancel.
func (h *EstimateHandler) CancelEstimate(c *gin.Context) {
	h.withOwnedEstimate(c, h.service.CancelEstimate)
}

func (h *EstimateHandler) withOwnedEstimate(
	c *gin.Context,
	op func(ctx context.Context, userID, estimateID uuid.UUID) (*application.EstimateDTO, error),
) {
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid estimate ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := op(c.Request.Context(), userID, estimateID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePagination reads page/limit query parameters with sane bounds.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
