package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/washpoint/washpoint-api/internal/application/service"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/request"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles service, vehicle type and payment method HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateService creates a catalog service
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req request.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), &service.CreateServiceInput{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created", svc)
}

// GetService returns one catalog service
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved", svc)
}

// ListServices lists catalog services with optional search
func (h *CatalogHandler) ListServices(c *gin.Context) {
	params := ParsePagination(c)
	result, err := h.catalogService.ListServices(c.Request.Context(), c.Query("search"), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Services retrieved", result)
}

// UpdateService updates a catalog service
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req request.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), &service.UpdateServiceInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated", svc)
}

// DeleteService removes a catalog service
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CreateVehicleType creates a vehicle type
func (h *CatalogHandler) CreateVehicleType(c *gin.Context) {
	var req request.CreateVehicleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vt, err := h.catalogService.CreateVehicleType(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vehicle type created", vt)
}

// ListVehicleTypes lists vehicle types
func (h *CatalogHandler) ListVehicleTypes(c *gin.Context) {
	vts, err := h.catalogService.ListVehicleTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle types retrieved", vts)
}

// CreatePaymentMethod creates a payment method
func (h *CatalogHandler) CreatePaymentMethod(c *gin.Context) {
	var req request.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := h.catalogService.CreatePaymentMethod(c.Request.Context(), &service.CreatePaymentMethodInput{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment method created", method)
}

// ListPaymentMethods lists payment methods
func (h *CatalogHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.catalogService.ListPaymentMethods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment methods retrieved", methods)
}

// SetPaymentMethodActive enables or disables a payment method
func (h *CatalogHandler) SetPaymentMethodActive(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	var req request.SetPaymentMethodActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := h.catalogService.SetPaymentMethodActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method updated", method)
}
