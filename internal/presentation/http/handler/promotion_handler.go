package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/washpoint/washpoint-api/internal/application/service"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/request"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/response"
)

// PromotionHandler handles promotion HTTP requests
type PromotionHandler struct {
	promotionService *service.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// Create creates a promotion
func (h *PromotionHandler) Create(c *gin.Context) {
	var req request.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var minTotal *int64
	if req.MinTotal != nil {
		v := toCents(*req.MinTotal)
		minTotal = &v
	}

	promo, err := h.promotionService.CreatePromotion(c.Request.Context(), &service.CreatePromotionInput{
		Name:       req.Name,
		Scope:      req.Scope,
		Mode:       req.Mode,
		Value:      req.Value,
		Priority:   req.Priority,
		StartsOn:   req.StartsOn,
		EndsOn:     req.EndsOn,
		BranchID:   req.BranchID,
		MinTotal:   minTotal,
		MethodCode: req.MethodCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Promotion created", promo)
}

// Get returns one promotion
func (h *PromotionHandler) Get(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	promo, err := h.promotionService.GetPromotion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion retrieved", promo)
}

// List lists the tenant's promotions
func (h *PromotionHandler) List(c *gin.Context) {
	params := ParsePagination(c)
	result, err := h.promotionService.ListPromotions(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Promotions retrieved", result)
}

// Update updates a promotion
func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	var req request.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var minTotal *int64
	if req.MinTotal != nil {
		v := toCents(*req.MinTotal)
		minTotal = &v
	}

	promo, err := h.promotionService.UpdatePromotion(c.Request.Context(), &service.UpdatePromotionInput{
		ID:       id,
		Name:     req.Name,
		Active:   req.Active,
		Priority: req.Priority,
		EndsOn:   req.EndsOn,
		MinTotal: minTotal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion updated", promo)
}

// Delete removes a promotion
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	if err := h.promotionService.DeletePromotion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
