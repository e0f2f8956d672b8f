package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CashSession is a bounded window of register activity at a branch. At most one
// session per branch may be open (ClosedAt null) at a time; the guard is a
// partial unique index plus a pre-check under lock.
type CashSession struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BranchID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	OpenedAt   time.Time      `gorm:"not null" json:"opened_at"`
	OpenedByID uuid.UUID      `gorm:"type:uuid;not null" json:"opened_by_id"`
	ClosedAt   *time.Time     `json:"closed_at,omitempty"`
	ClosedByID *uuid.UUID     `gorm:"type:uuid" json:"closed_by_id,omitempty"`
	Notes      string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch   Branch             `gorm:"foreignKey:BranchID" json:"-"`
	OpenedBy User               `gorm:"foreignKey:OpenedByID" json:"-"`
	ClosedBy *User              `gorm:"foreignKey:ClosedByID" json:"-"`
	Counts   []CashSessionCount `gorm:"foreignKey:CashSessionID" json:"counts,omitempty"`
}

// BeforeCreate generates a UUID before creating a new cash session
func (cs *CashSession) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashSession model
func (CashSession) TableName() string {
	return "cash_sessions"
}

// IsOpen reports whether the session has not been closed yet
func (cs *CashSession) IsOpen() bool {
	return cs.ClosedAt == nil
}

// CashSessionCount is one per-method reconciliation row written when a session
// closes: the expected totals aggregated from the payment ledger inside the
// session window, next to what the operator actually counted.
type CashSessionCount struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CashSessionID   uuid.UUID `gorm:"type:uuid;not null;index" json:"cash_session_id"`
	PaymentMethodID uuid.UUID `gorm:"type:uuid;not null" json:"payment_method_id"`
	ExpectedTotal   int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	ExpectedTips    int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CountedTotal    int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CountedTips     int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	CashSession   CashSession   `gorm:"foreignKey:CashSessionID" json:"-"`
	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c CashSessionCount) MarshalJSON() ([]byte, error) {
	type Alias CashSessionCount
	return json.Marshal(&struct {
		Alias
		ExpectedTotal float64 `json:"expected_total"`
		ExpectedTips  float64 `json:"expected_tips"`
		CountedTotal  float64 `json:"counted_total"`
		CountedTips   float64 `json:"counted_tips"`
	}{
		Alias:         Alias(c),
		ExpectedTotal: float64(c.ExpectedTotal) / 100,
		ExpectedTips:  float64(c.ExpectedTips) / 100,
		CountedTotal:  float64(c.CountedTotal) / 100,
		CountedTips:   float64(c.CountedTips) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new reconciliation row
func (c *CashSessionCount) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashSessionCount model
func (CashSessionCount) TableName() string {
	return "cash_session_counts"
}
