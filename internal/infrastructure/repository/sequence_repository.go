package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	domainRepo "github.com/washpoint/washpoint-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence counter repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// GetForUpdate takes the exclusive row lock that serializes allocations on the
// same (branch, document type, point of sale) key. Returns nil when the series
// has never allocated.
func (r *sequenceRepository) GetForUpdate(ctx context.Context, branchID uuid.UUID, docType enum.DocumentType, pos int) (*entity.SequenceCounter, error) {
	var counter entity.SequenceCounter
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "branch_id = ? AND document_type = ? AND point_of_sale = ?", branchID, docType, pos).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &counter, err
}

// Create initializes the counter row for a fresh series. ON CONFLICT DO NOTHING
// absorbs the race where two transactions both saw no row: the loser's insert
// waits for the winner, affects zero rows and returns false instead of a
// unique-index violation.
func (r *sequenceRepository) Create(ctx context.Context, counter *entity.SequenceCounter) (bool, error) {
	result := dbFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(counter)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *sequenceRepository) Update(ctx context.Context, counter *entity.SequenceCounter) error {
	return dbFromContext(ctx, r.db).Save(counter).Error
}
