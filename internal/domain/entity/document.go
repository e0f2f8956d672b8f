package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Document is an immutable numbered snapshot of a paid order. It is written once
// at emission time and never updated; the core exposes no write path afterwards.
type Document struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BranchID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"branch_id"`
	OrderID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_document_order" json:"order_id"`
	DocumentType enum.DocumentType `gorm:"size:50;not null;uniqueIndex:idx_document_order" json:"document_type"`
	PointOfSale  int               `gorm:"not null" json:"point_of_sale"`
	Number       int64             `gorm:"not null" json:"number"`
	DisplayNo    string            `gorm:"size:100;not null" json:"display_no"`
	CustomerName *string           `gorm:"size:255" json:"customer_name,omitempty"`
	VehiclePlate *string           `gorm:"size:20" json:"vehicle_plate,omitempty"`
	SubTotal     int64             `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Discount     int64             `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Tip          int64             `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total        int64             `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	IssuedAt     time.Time         `gorm:"not null" json:"issued_at"`
	IssuedByID   uuid.UUID         `gorm:"type:uuid;not null" json:"issued_by_id"`
	CreatedAt    time.Time         `json:"created_at"`

	// Relationships
	Order Order          `gorm:"foreignKey:OrderID" json:"-"`
	Lines []DocumentLine `gorm:"foreignKey:DocumentID" json:"lines,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d Document) MarshalJSON() ([]byte, error) {
	type Alias Document
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Discount float64 `json:"discount"`
		Tip      float64 `json:"tip"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(d),
		SubTotal: float64(d.SubTotal) / 100,
		Discount: float64(d.Discount) / 100,
		Tip:      float64(d.Tip) / 100,
		Total:    float64(d.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new document
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// DocumentLine is one frozen line of an emitted document
type DocumentLine struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	ServiceName string    `gorm:"size:255;not null" json:"service_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total       int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (dl DocumentLine) MarshalJSON() ([]byte, error) {
	type Alias DocumentLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(dl),
		UnitPrice: float64(dl.UnitPrice) / 100,
		Total:     float64(dl.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new document line
func (dl *DocumentLine) BeforeCreate(tx *gorm.DB) error {
	if dl.ID == uuid.Nil {
		dl.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DocumentLine model
func (DocumentLine) TableName() string {
	return "document_lines"
}
