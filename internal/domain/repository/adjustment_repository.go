package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// AdjustmentRepository defines the interface for adjustment data access
type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.Adjustment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Adjustment, error)
	// GetByOrderID returns the order's adjustments in creation order.
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Adjustment, error)
	// ExistsForPromotion checks the (order, promotion) pair for order scope, or
	// the (order, item, promotion) triple when itemID is non-nil.
	ExistsForPromotion(ctx context.Context, orderID, promotionID uuid.UUID, itemID *uuid.UUID) (bool, error)
	// ExistsBySource checks for an order-scope adjustment with the given source.
	ExistsBySource(ctx context.Context, orderID uuid.UUID, source enum.AdjustmentSource) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOrderItemID(ctx context.Context, itemID uuid.UUID) error
}

// PromotionRepository defines the interface for promotion data access
type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error)
	Update(ctx context.Context, promotion *entity.Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Promotion, int64, error)
	// FindByMethodCode returns active promotions gated on the payment method code,
	// vigent on the given date and usable at the branch, ordered by priority
	// ascending then value descending.
	FindByMethodCode(ctx context.Context, branchID uuid.UUID, methodCode string, date time.Time) ([]entity.Promotion, error)
}
