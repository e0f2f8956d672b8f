package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
)

// SequenceService allocates gapless document numbers. Each (branch, document
// type, point of sale) series is backed by a counter row that is read and bumped
// under an exclusive lock, so concurrent allocations serialize and the series
// never skips a value. Allocation joins the caller's transaction: if the caller
// rolls back, the number is never consumed.
type SequenceService struct {
	sequenceRepo repository.SequenceRepository
	tx           repository.TxManager
}

// NewSequenceService creates a new sequence service
func NewSequenceService(sequenceRepo repository.SequenceRepository, tx repository.TxManager) *SequenceService {
	return &SequenceService{sequenceRepo: sequenceRepo, tx: tx}
}

// AllocateNext returns the next number in the series and advances the counter.
// The first allocation on a fresh series returns 1.
func (s *SequenceService) AllocateNext(ctx context.Context, branchID uuid.UUID, docType enum.DocumentType, pointOfSale int) (int64, error) {
	if !docType.Valid() {
		return 0, apperror.NewValidationError("Unknown document type")
	}
	if pointOfSale < 1 {
		return 0, apperror.NewValidationError("Point of sale must be at least 1")
	}

	var allocated int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		counter, err := s.sequenceRepo.GetForUpdate(ctx, branchID, docType, pointOfSale)
		if err != nil {
			return err
		}
		if counter == nil {
			inserted, err := s.sequenceRepo.Create(ctx, &entity.SequenceCounter{
				BranchID:     branchID,
				DocumentType: docType,
				PointOfSale:  pointOfSale,
				NextValue:    2,
			})
			if err != nil {
				return err
			}
			if inserted {
				allocated = 1
				return nil
			}
			// Lost the initialization race; the winner's row is committed
			// now, so the locked read serializes us behind it.
			counter, err = s.sequenceRepo.GetForUpdate(ctx, branchID, docType, pointOfSale)
			if err != nil {
				return err
			}
			if counter == nil {
				return apperror.NewConflictError("Sequence counter initialization conflict")
			}
		}
		allocated = counter.NextValue
		counter.NextValue++
		return s.sequenceRepo.Update(ctx, counter)
	})
	if err != nil {
		return 0, err
	}
	return allocated, nil
}
