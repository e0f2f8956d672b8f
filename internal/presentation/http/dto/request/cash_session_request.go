package request

import "github.com/google/uuid"

// OpenCashSessionRequest represents a cash session opening request
type OpenCashSessionRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Notes    string    `json:"notes"`
}

// CountedAmountRequest is one operator-counted line at session close.
// Amounts are decimal, e.g. 152.50.
type CountedAmountRequest struct {
	PaymentMethodID uuid.UUID `json:"payment_method_id" binding:"required"`
	Total           float64   `json:"total" binding:"gte=0"`
	Tips            float64   `json:"tips" binding:"gte=0"`
}

// CloseCashSessionRequest represents a cash session closing request
type CloseCashSessionRequest struct {
	Counted []CountedAmountRequest `json:"counted" binding:"required,dive"`
	Notes   string                 `json:"notes"`
}
