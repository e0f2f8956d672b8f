package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// CashSessionRepository defines the interface for cash session data access
type CashSessionRepository interface {
	Create(ctx context.Context, session *entity.CashSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)
	// GetByIDForUpdate loads the session under an exclusive row lock. Must be
	// called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)
	// GetOpenByBranch returns the branch's open session, or nil if none.
	GetOpenByBranch(ctx context.Context, branchID uuid.UUID) (*entity.CashSession, error)
	Update(ctx context.Context, session *entity.CashSession) error
	CreateCounts(ctx context.Context, counts []entity.CashSessionCount) error
	List(ctx context.Context, branchID *uuid.UUID, params *pagination.PaginationParams) ([]entity.CashSession, int64, error)
}
