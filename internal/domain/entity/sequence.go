package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// SequenceCounter holds the next value for one gapless document-number series.
// The key is (branch, document type, point of sale); the row is read and bumped
// under an exclusive lock so concurrent allocations form a contiguous run.
type SequenceCounter struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BranchID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_sequence_key" json:"branch_id"`
	DocumentType enum.DocumentType `gorm:"size:50;not null;uniqueIndex:idx_sequence_key" json:"document_type"`
	PointOfSale  int               `gorm:"not null;uniqueIndex:idx_sequence_key" json:"point_of_sale"`
	NextValue    int64             `gorm:"not null;default:1" json:"next_value"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new counter row
func (s *SequenceCounter) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
