package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/internal/domain/event"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
)

// PaymentService is the append-only payment ledger. Registering a payment never
// edits prior entries; the order's balance is always recomputed from the full
// ledger under the order's row lock.
type PaymentService struct {
	orderRepo   repository.OrderRepository
	itemRepo    repository.OrderItemRepository
	adjRepo     repository.AdjustmentRepository
	paymentRepo repository.PaymentRepository
	methodRepo  repository.PaymentMethodRepository
	tx          repository.TxManager
	events      event.Publisher
	now         func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	adjRepo repository.AdjustmentRepository,
	paymentRepo repository.PaymentRepository,
	methodRepo repository.PaymentMethodRepository,
	tx repository.TxManager,
	events event.Publisher,
) *PaymentService {
	return &PaymentService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		adjRepo:     adjRepo,
		paymentRepo: paymentRepo,
		methodRepo:  methodRepo,
		tx:          tx,
		events:      events,
		now:         time.Now,
	}
}

// RegisterPaymentInput represents a payment registration request
type RegisterPaymentInput struct {
	OrderID         uuid.UUID
	PaymentMethodID uuid.UUID
	Amount          int64 // cents
	IsTip           bool
	IdempotencyKey  *string
}

// RegisterPaymentResult carries the persisted payment plus the order state after
// the balance recompute
type RegisterPaymentResult struct {
	Payment  *entity.Payment
	Order    *entity.Order
	Replayed bool // true when an idempotency key matched an existing entry
}

// RegisterPayment appends a payment to the order's ledger. Retried requests with
// the same idempotency key return the original entry without double-charging.
// Non-tip payments that would exceed the balance due are rejected outright; a
// payment that brings the balance to exactly zero moves the order to paid.
func (s *PaymentService) RegisterPayment(ctx context.Context, input *RegisterPaymentInput, userID uuid.UUID) (*RegisterPaymentResult, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError("Amount must be greater than zero")
	}

	method, err := s.methodRepo.GetByID(ctx, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}
	if !method.Active {
		return nil, apperror.NewValidationError("Payment method is not active")
	}

	result := &RegisterPaymentResult{}
	var from, to enum.OrderStatus
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status == enum.OrderStatusCancelled {
			return apperror.NewStateError("Cancelled orders cannot receive payments")
		}

		if input.IdempotencyKey != nil {
			existing, err := s.paymentRepo.GetByOrderAndKey(ctx, order.ID, *input.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Payment = existing
				result.Order = order
				result.Replayed = true
				return nil
			}
		}

		if !input.IsTip && input.Amount > order.BalanceDue {
			return apperror.NewValidationError("Payment exceeds the balance due")
		}

		payment := &entity.Payment{
			OrderID:         order.ID,
			PaymentMethodID: input.PaymentMethodID,
			Amount:          input.Amount,
			IsTip:           input.IsTip,
			IdempotencyKey:  input.IdempotencyKey,
			UserID:          userID,
			PaidAt:          s.now(),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		if err := recomputeOrder(ctx, s.orderRepo, s.itemRepo, s.adjRepo, s.paymentRepo, order); err != nil {
			return err
		}

		if !input.IsTip && order.BalanceDue == 0 && order.Status.CanTransitionTo(enum.OrderStatusPaid) {
			from = order.Status
			to = enum.OrderStatusPaid
			order.Status = enum.OrderStatusPaid
			if err := s.orderRepo.Update(ctx, order); err != nil {
				return err
			}
		}

		result.Payment = payment
		result.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		s.events.Publish(ctx, event.NewPaymentRegistered(
			result.Order.TenantID, result.Order.ID, result.Payment.ID,
			result.Payment.Amount, result.Payment.IsTip, userID,
		))
		if to == enum.OrderStatusPaid {
			s.events.Publish(ctx, event.NewOrderStateChanged(result.Order.TenantID, result.Order.ID, from, to, userID))
		}
	}
	return result, nil
}

// ListPayments returns the order's ledger entries in creation order
func (s *PaymentService) ListPayments(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.paymentRepo.GetByOrderID(ctx, orderID)
}
