package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order is the unit of sale tracked through the lifecycle state machine.
// All monetary fields are recomputed by full replay of items and adjustments,
// never by incremental deltas.
type Order struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BranchID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	VehicleID  *uuid.UUID       `gorm:"type:uuid;index" json:"vehicle_id,omitempty"`
	Status     enum.OrderStatus `gorm:"default:0" json:"status"`
	SubTotal   int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Discount   int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Tip        int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total      int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	BalanceDue int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Notes      *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Tenant      Tenant       `gorm:"foreignKey:TenantID" json:"-"`
	Branch      Branch       `gorm:"foreignKey:BranchID" json:"-"`
	User        User         `gorm:"foreignKey:UserID" json:"-"`
	Customer    *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle     *Vehicle     `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Items       []OrderItem  `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Adjustments []Adjustment `gorm:"foreignKey:OrderID" json:"adjustments,omitempty"`
	Payments    []Payment    `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		SubTotal   float64 `json:"sub_total"`
		Discount   float64 `json:"discount"`
		Tip        float64 `json:"tip"`
		Total      float64 `json:"total"`
		BalanceDue float64 `json:"balance_due"`
	}{
		Alias:      Alias(o),
		SubTotal:   float64(o.SubTotal) / 100,
		Discount:   float64(o.Discount) / 100,
		Tip:        float64(o.Tip) / 100,
		Total:      float64(o.Total) / 100,
		BalanceDue: float64(o.BalanceDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line on an order. The unit price is snapshotted from the price
// list when the item is added and never changes afterwards, even if the price
// list moves on. A service may appear at most once per order.
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_order_service" json:"order_id"`
	ServiceID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_order_service" json:"service_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total     int64          `gorm:"not null" json:"-"` // Quantity x UnitPrice in cents
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		Total:     float64(oi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
