package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceEntry is one version of the price for a (tenant, branch, service, vehicle
// type) combination. Validity windows are half-open [Start, End): publishing a new
// entry closes the previous one by setting its End to the new Start, so active
// windows for a combination never overlap and at most one is open-ended.
type PriceEntry struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BranchID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_price_combo" json:"branch_id"`
	ServiceID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_price_combo" json:"service_id"`
	VehicleTypeID uuid.UUID      `gorm:"type:uuid;not null;index:idx_price_combo" json:"vehicle_type_id"`
	Price         int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Currency      string         `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Start         time.Time      `gorm:"type:date;not null;index:idx_price_combo" json:"start"`
	End           *time.Time     `gorm:"type:date" json:"end,omitempty"`
	Active        bool           `gorm:"default:true" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p PriceEntry) MarshalJSON() ([]byte, error) {
	type Alias PriceEntry
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: float64(p.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new price entry
func (p *PriceEntry) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PriceEntry model
func (PriceEntry) TableName() string {
	return "price_entries"
}

// Covers reports whether the entry's validity window contains the given date.
// End is exclusive so a closed entry hands over to its successor with no overlap.
func (p *PriceEntry) Covers(date time.Time) bool {
	d := DateOnly(date)
	if d.Before(DateOnly(p.Start)) {
		return false
	}
	if p.End == nil {
		return true
	}
	return d.Before(DateOnly(*p.End))
}

// DateOnly truncates a timestamp to midnight UTC for date comparisons
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
