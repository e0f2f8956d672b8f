package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
)

// DocumentRepository defines the interface for emitted document access.
// Documents are write-once; there is no update method.
type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	CreateLines(ctx context.Context, lines []entity.DocumentLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	GetByOrderAndType(ctx context.Context, orderID uuid.UUID, docType string) (*entity.Document, error)
}

// IdempotencyRepository defines the interface for HTTP idempotency key storage
type IdempotencyRepository interface {
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	DeleteExpired(ctx context.Context) error
}
