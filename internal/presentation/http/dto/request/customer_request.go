package request

import "github.com/google/uuid"

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,min=2,max=255"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// AddVehicleRequest represents a vehicle registration request
type AddVehicleRequest struct {
	VehicleTypeID uuid.UUID `json:"vehicle_type_id" binding:"required"`
	Plate         string    `json:"plate" binding:"required,min=2,max=20"`
	Make          *string   `json:"make,omitempty"`
	Model         *string   `json:"model,omitempty"`
	Color         *string   `json:"color,omitempty"`
}
