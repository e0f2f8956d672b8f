package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	domainRepo "github.com/washpoint/washpoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFromContext(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) GetByOrderAndKey(ctx context.Context, orderID uuid.UUID, idempotencyKey string) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFromContext(ctx, r.db).
		First(&payment, "order_id = ? AND idempotency_key = ?", orderID, idempotencyKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFromContext(ctx, r.db).
		Preload("PaymentMethod").
		Where("order_id = ?", orderID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) SumNonTip(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var sum int64
	err := dbFromContext(ctx, r.db).Model(&entity.Payment{}).
		Where("order_id = ? AND is_tip = ?", orderID, false).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// AggregateForBranchWindow groups the branch's ledger over [from, to) per
// payment method, splitting tips out of the settlement totals.
func (r *paymentRepository) AggregateForBranchWindow(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]domainRepo.MethodTotals, error) {
	var totals []domainRepo.MethodTotals
	err := dbFromContext(ctx, r.db).Model(&entity.Payment{}).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.branch_id = ?", branchID).
		Where("payments.paid_at >= ? AND payments.paid_at < ?", from, to).
		Select(`payments.payment_method_id AS payment_method_id,
			COALESCE(SUM(payments.amount) FILTER (WHERE NOT payments.is_tip), 0) AS total,
			COALESCE(SUM(payments.amount) FILTER (WHERE payments.is_tip), 0) AS tips`).
		Group("payments.payment_method_id").
		Scan(&totals).Error
	return totals, err
}

type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *gorm.DB) domainRepo.PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	return dbFromContext(ctx, r.db).Create(method).Error
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		First(&method, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *paymentMethodRepository) GetByCode(ctx context.Context, code string) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		First(&method, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *paymentMethodRepository) List(ctx context.Context) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Order("name ASC").
		Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) Update(ctx context.Context, method *entity.PaymentMethod) error {
	return dbFromContext(ctx, r.db).Save(method).Error
}
