package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Promotion is a reusable, time-bounded discount template owned by a tenant.
// Applying it to an order instantiates an Adjustment; the template itself is
// long-lived and shared across many orders.
type Promotion struct {
	ID       uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	TenantID uuid.UUID            `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name     string               `gorm:"size:255;not null" json:"name"`
	Scope    enum.AdjustmentScope `gorm:"default:0" json:"scope"`
	Mode     enum.AdjustmentMode  `gorm:"default:0" json:"mode"`
	Value    decimal.Decimal      `gorm:"type:decimal(10,2);not null" json:"value"`
	Active   bool                 `gorm:"default:true" json:"active"`
	// Priority orders payment-method promotion selection; lower wins.
	Priority int        `gorm:"default:100" json:"priority"`
	StartsOn time.Time  `gorm:"type:date;not null" json:"starts_on"`
	EndsOn   *time.Time `gorm:"type:date" json:"ends_on,omitempty"`
	// BranchID restricts the promotion to one branch; nil means all branches.
	BranchID *uuid.UUID `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	// MinTotal gates order-scope application on the order subtotal, in cents.
	MinTotal *int64 `json:"min_total,omitempty"`
	// MethodCode gates the promotion on a payment method code.
	MethodCode *string        `gorm:"size:50;index" json:"method_code,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant  `gorm:"foreignKey:TenantID" json:"-"`
	Branch *Branch `gorm:"foreignKey:BranchID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new promotion
func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Promotion model
func (Promotion) TableName() string {
	return "promotions"
}

// VigentOn reports whether the promotion's validity window contains the given
// date. Both bounds are date-only and inclusive.
func (p *Promotion) VigentOn(date time.Time) bool {
	d := DateOnly(date)
	if d.Before(DateOnly(p.StartsOn)) {
		return false
	}
	if p.EndsOn == nil {
		return true
	}
	return !d.After(DateOnly(*p.EndsOn))
}

// MatchesBranch reports whether the promotion may be used at the given branch
func (p *Promotion) MatchesBranch(branchID uuid.UUID) bool {
	return p.BranchID == nil || *p.BranchID == branchID
}

// Adjustment is a discount applied to an order or a single item. It can be
// created manually, instantiated from a promotion, or triggered by a payment
// method. Adjustments exist only while the order is mutable.
type Adjustment struct {
	ID          uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"order_id"`
	OrderItemID *uuid.UUID            `gorm:"type:uuid;index" json:"order_item_id,omitempty"`
	Scope       enum.AdjustmentScope  `gorm:"default:0" json:"scope"`
	Mode        enum.AdjustmentMode   `gorm:"default:0" json:"mode"`
	Value       decimal.Decimal       `gorm:"type:decimal(10,2);not null" json:"value"`
	Source      enum.AdjustmentSource `gorm:"default:0" json:"source"`
	PromotionID *uuid.UUID            `gorm:"type:uuid;index" json:"promotion_id,omitempty"`
	Reason      string                `gorm:"size:255" json:"reason"`
	UserID      uuid.UUID             `gorm:"type:uuid;not null" json:"user_id"`
	CreatedAt   time.Time             `json:"created_at"`

	// Relationships
	Order     Order      `gorm:"foreignKey:OrderID" json:"-"`
	OrderItem *OrderItem `gorm:"foreignKey:OrderItemID" json:"-"`
	Promotion *Promotion `gorm:"foreignKey:PromotionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new adjustment
func (a *Adjustment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Adjustment model
func (Adjustment) TableName() string {
	return "adjustments"
}

var oneHundred = decimal.NewFromInt(100)

// ApplyTo applies the adjustment to a basis amount in cents and returns the new
// basis. Percent mode multiplies by (1 - value/100); fixed mode subtracts the
// value. A single adjustment never drives the basis below zero.
func (a *Adjustment) ApplyTo(basis int64) int64 {
	var result int64
	switch a.Mode {
	case enum.AdjustmentModeFixed:
		result = basis - a.Value.Mul(oneHundred).Round(0).IntPart()
	default:
		factor := oneHundred.Sub(a.Value).Div(oneHundred)
		result = decimal.NewFromInt(basis).Mul(factor).Round(0).IntPart()
	}
	if result < 0 {
		return 0
	}
	return result
}
