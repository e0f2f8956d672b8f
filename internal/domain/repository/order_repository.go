package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// OrderFilterParams holds filter parameters for listing orders
type OrderFilterParams struct {
	Search     string
	Status     *enum.OrderStatus
	BranchID   *uuid.UUID
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
	Pagination pagination.PaginationParams
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetByIDForUpdate loads the order under an exclusive row lock. Must be
	// called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderItemRepository defines the interface for order item data access
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	GetByOrderAndService(ctx context.Context, orderID, serviceID uuid.UUID) (*entity.OrderItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
