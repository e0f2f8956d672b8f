package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/washpoint/washpoint-api/internal/application/service"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/request"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer and vehicle HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create creates a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		TaxID:   req.TaxID,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created", customer)
}

// Get returns one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved", customer)
}

// List lists customers with optional search
func (h *CustomerHandler) List(c *gin.Context) {
	params := ParsePagination(c)
	result, err := h.customerService.ListCustomers(c.Request.Context(), c.Query("search"), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved", result)
}

// Update updates customer details
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		TaxID:   req.TaxID,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated", customer)
}

// Delete removes a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddVehicle registers a vehicle for the customer
func (h *CustomerHandler) AddVehicle(c *gin.Context) {
	customerID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.AddVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.customerService.AddVehicle(c.Request.Context(), &service.AddVehicleInput{
		CustomerID:    customerID,
		VehicleTypeID: req.VehicleTypeID,
		Plate:         req.Plate,
		Make:          req.Make,
		Model:         req.Model,
		Color:         req.Color,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vehicle added", vehicle)
}

// ListVehicles lists the customer's vehicles
func (h *CustomerHandler) ListVehicles(c *gin.Context) {
	customerID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	vehicles, err := h.customerService.ListVehicles(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicles retrieved", vehicles)
}

// DeleteVehicle removes a vehicle
func (h *CustomerHandler) DeleteVehicle(c *gin.Context) {
	vehicleID, ok := ParseUUIDParam(c, "vehicleId")
	if !ok {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.customerService.DeleteVehicle(c.Request.Context(), vehicleID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
