package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
)

// CreateServiceRequest represents a service catalog creation request
type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}

// UpdateServiceRequest represents a service catalog update request
type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// CreateVehicleTypeRequest represents a vehicle type creation request
type CreateVehicleTypeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// CreatePaymentMethodRequest represents a payment method creation request
type CreatePaymentMethodRequest struct {
	Code string `json:"code" binding:"required,min=2,max=50"`
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// SetPaymentMethodActiveRequest toggles a payment method
type SetPaymentMethodActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// PublishPriceRequest represents a price list publication request.
// Price is a decimal amount, e.g. 35.00; dates are date-only ISO strings.
type PublishPriceRequest struct {
	BranchID      uuid.UUID  `json:"branch_id" binding:"required"`
	ServiceID     uuid.UUID  `json:"service_id" binding:"required"`
	VehicleTypeID uuid.UUID  `json:"vehicle_type_id" binding:"required"`
	Price         float64    `json:"price" binding:"required,gt=0"`
	Currency      string     `json:"currency" binding:"omitempty,len=3"`
	Start         time.Time  `json:"start" binding:"required" time_format:"2006-01-02"`
	End           *time.Time `json:"end,omitempty" time_format:"2006-01-02"`
}

// CreatePromotionRequest represents a promotion creation request
type CreatePromotionRequest struct {
	Name       string               `json:"name" binding:"required,min=2,max=255"`
	Scope      enum.AdjustmentScope `json:"scope"`
	Mode       enum.AdjustmentMode  `json:"mode"`
	Value      decimal.Decimal      `json:"value" binding:"required"`
	Priority   int                  `json:"priority"`
	StartsOn   time.Time            `json:"starts_on" binding:"required" time_format:"2006-01-02"`
	EndsOn     *time.Time           `json:"ends_on,omitempty" time_format:"2006-01-02"`
	BranchID   *uuid.UUID           `json:"branch_id,omitempty"`
	MinTotal   *float64             `json:"min_total,omitempty" binding:"omitempty,gte=0"`
	MethodCode *string              `json:"method_code,omitempty"`
}

// UpdatePromotionRequest represents a promotion update request
type UpdatePromotionRequest struct {
	Name     *string    `json:"name,omitempty" binding:"omitempty,min=2,max=255"`
	Active   *bool      `json:"active,omitempty"`
	Priority *int       `json:"priority,omitempty"`
	EndsOn   *time.Time `json:"ends_on,omitempty" time_format:"2006-01-02"`
	MinTotal *float64   `json:"min_total,omitempty" binding:"omitempty,gte=0"`
}
