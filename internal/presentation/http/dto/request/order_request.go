package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
)

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	BranchID   uuid.UUID  `json:"branch_id" binding:"required"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	VehicleID  *uuid.UUID `json:"vehicle_id,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

// AddOrderItemRequest represents an add-item request
type AddOrderItemRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gte=1"`
}

// SetTipRequest represents a tip update request. Tip is a decimal amount.
type SetTipRequest struct {
	Tip float64 `json:"tip" binding:"gte=0"`
}

// TransitionRequest represents an order lifecycle transition request
type TransitionRequest struct {
	Status enum.OrderStatus `json:"status" binding:"required"`
}

// AddAdjustmentRequest represents a manual adjustment request. Value is a
// percentage 0-100 in percent mode, or a decimal currency amount in fixed mode.
type AddAdjustmentRequest struct {
	OrderItemID *uuid.UUID          `json:"order_item_id,omitempty"`
	Mode        enum.AdjustmentMode `json:"mode"`
	Value       decimal.Decimal     `json:"value" binding:"required"`
	Reason      string              `json:"reason" binding:"required,min=3,max=255"`
}

// ApplyPromotionRequest represents a promotion application request
type ApplyPromotionRequest struct {
	PromotionID uuid.UUID  `json:"promotion_id" binding:"required"`
	OrderItemID *uuid.UUID `json:"order_item_id,omitempty"`
}

// ApplyMethodPromotionRequest triggers payment-method promotion selection
type ApplyMethodPromotionRequest struct {
	MethodCode string `json:"method_code" binding:"required,min=2,max=50"`
}

// RegisterPaymentRequest represents a payment registration request.
// Amount is a decimal amount, e.g. 19.99.
type RegisterPaymentRequest struct {
	PaymentMethodID uuid.UUID `json:"payment_method_id" binding:"required"`
	Amount          float64   `json:"amount" binding:"required,gt=0"`
	IsTip           bool      `json:"is_tip"`
	IdempotencyKey  *string   `json:"idempotency_key,omitempty" binding:"omitempty,max=255"`
}

// IssueDocumentRequest represents a document emission request
type IssueDocumentRequest struct {
	DocumentType enum.DocumentType `json:"document_type" binding:"required"`
	PointOfSale  int               `json:"point_of_sale" binding:"required,gte=1"`
}
