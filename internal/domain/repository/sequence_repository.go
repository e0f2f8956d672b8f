package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
)

// SequenceRepository defines the interface for document-number counter access.
// All methods must run inside a transaction; GetForUpdate takes the exclusive
// row lock that serializes concurrent allocations on the same key. Create
// reports false without error when another transaction already initialized the
// same series, so callers can fall back to the locked read instead of failing
// on the unique index.
type SequenceRepository interface {
	GetForUpdate(ctx context.Context, branchID uuid.UUID, docType enum.DocumentType, pos int) (*entity.SequenceCounter, error)
	Create(ctx context.Context, counter *entity.SequenceCounter) (bool, error)
	Update(ctx context.Context, counter *entity.SequenceCounter) error
}
