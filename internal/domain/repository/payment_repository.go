package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
)

// MethodTotals is the per-method aggregate for a cash-session window
type MethodTotals struct {
	PaymentMethodID uuid.UUID
	Total           int64 // non-tip sum in cents
	Tips            int64 // tip sum in cents
}

// PaymentRepository defines the interface for payment ledger data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByOrderAndKey(ctx context.Context, orderID uuid.UUID, idempotencyKey string) (*entity.Payment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
	// SumNonTip returns the sum of non-tip payment amounts for the order, in cents.
	SumNonTip(ctx context.Context, orderID uuid.UUID) (int64, error)
	// AggregateForBranchWindow groups payments of the branch's orders with
	// PaidAt in [from, to), split into non-tip and tip sums per method.
	AggregateForBranchWindow(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]MethodTotals, error)
}

// PaymentMethodRepository defines the interface for payment method data access
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entity.PaymentMethod) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error)
	GetByCode(ctx context.Context, code string) (*entity.PaymentMethod, error)
	List(ctx context.Context) ([]entity.PaymentMethod, error)
	Update(ctx context.Context, method *entity.PaymentMethod) error
}
