package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is one entry in the payment ledger. Payments are immutable: there is
// no update path, and corrections are made with new entries. Tip payments are
// recorded in the ledger but never reduce the order's balance due.
type Payment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_payment_idem" json:"order_id"`
	PaymentMethodID uuid.UUID `gorm:"type:uuid;not null;index" json:"payment_method_id"`
	Amount          int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	IsTip           bool      `gorm:"default:false" json:"is_tip"`
	// IdempotencyKey deduplicates retried registrations per order.
	IdempotencyKey *string   `gorm:"size:255;uniqueIndex:idx_payment_idem" json:"idempotency_key,omitempty"`
	UserID         uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	PaidAt         time.Time `gorm:"not null;index" json:"paid_at"`
	CreatedAt      time.Time `json:"created_at"`

	// Relationships
	Order         Order         `gorm:"foreignKey:OrderID" json:"-"`
	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
	User          User          `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
