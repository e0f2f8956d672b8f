package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/application/service"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/request"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/response"
)

// PriceHandler handles price list HTTP requests
type PriceHandler struct {
	pricingService *service.PricingService
}

// NewPriceHandler creates a new price handler
func NewPriceHandler(pricingService *service.PricingService) *PriceHandler {
	return &PriceHandler{pricingService: pricingService}
}

// Publish publishes a new price entry for a combination
func (h *PriceHandler) Publish(c *gin.Context) {
	var req request.PublishPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.pricingService.Publish(c.Request.Context(), &service.PublishPriceInput{
		Combo: repository.PriceCombination{
			BranchID:      req.BranchID,
			ServiceID:     req.ServiceID,
			VehicleTypeID: req.VehicleTypeID,
		},
		Price:    req.Price,
		Currency: req.Currency,
		Start:    req.Start,
		End:      req.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Price published", entry)
}

// Resolve returns the price entry covering a combination on a date
func (h *PriceHandler) Resolve(c *gin.Context) {
	combo, ok := parseCombo(c)
	if !ok {
		response.BadRequest(c, "Invalid price combination")
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	entry, err := h.pricingService.Resolve(c.Request.Context(), combo, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price resolved", entry)
}

// List lists price entries, optionally narrowed to one combination
func (h *PriceHandler) List(c *gin.Context) {
	params := ParsePagination(c)

	var combo *repository.PriceCombination
	if c.Query("branch_id") != "" {
		parsed, ok := parseCombo(c)
		if !ok {
			response.BadRequest(c, "Invalid price combination")
			return
		}
		combo = &parsed
	}

	result, err := h.pricingService.ListPrices(c.Request.Context(), combo, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Prices retrieved", result)
}

func parseCombo(c *gin.Context) (repository.PriceCombination, bool) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		return repository.PriceCombination{}, false
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		return repository.PriceCombination{}, false
	}
	vehicleTypeID, err := uuid.Parse(c.Query("vehicle_type_id"))
	if err != nil {
		return repository.PriceCombination{}, false
	}
	return repository.PriceCombination{
		BranchID:      branchID,
		ServiceID:     serviceID,
		VehicleTypeID: vehicleTypeID,
	}, true
}
