package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/internal/domain/event"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
)

// AdjustmentService applies and removes discounts on mutable orders. Every
// operation locks the order row, mutates the adjustment set and replays the
// totals inside one transaction.
type AdjustmentService struct {
	orderRepo   repository.OrderRepository
	itemRepo    repository.OrderItemRepository
	adjRepo     repository.AdjustmentRepository
	promoRepo   repository.PromotionRepository
	paymentRepo repository.PaymentRepository
	methodRepo  repository.PaymentMethodRepository
	tx          repository.TxManager
	events      event.Publisher
	now         func() time.Time
}

// NewAdjustmentService creates a new adjustment service
func NewAdjustmentService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	adjRepo repository.AdjustmentRepository,
	promoRepo repository.PromotionRepository,
	paymentRepo repository.PaymentRepository,
	methodRepo repository.PaymentMethodRepository,
	tx repository.TxManager,
	events event.Publisher,
) *AdjustmentService {
	return &AdjustmentService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		adjRepo:     adjRepo,
		promoRepo:   promoRepo,
		paymentRepo: paymentRepo,
		methodRepo:  methodRepo,
		tx:          tx,
		events:      events,
		now:         time.Now,
	}
}

// AddManualInput represents a manual discount request
type AddManualInput struct {
	OrderID     uuid.UUID
	OrderItemID *uuid.UUID
	Mode        enum.AdjustmentMode
	Value       decimal.Decimal
	Reason      string
}

// AddManual applies a manual discount to an order or one of its items
func (s *AdjustmentService) AddManual(ctx context.Context, input *AddManualInput, userID uuid.UUID) (*entity.Adjustment, error) {
	if err := validateAdjustmentValue(input.Mode, input.Value); err != nil {
		return nil, err
	}
	if input.Reason == "" {
		return nil, apperror.NewValidationError("Reason is required for manual discounts")
	}

	scope := enum.AdjustmentScopeOrder
	if input.OrderItemID != nil {
		scope = enum.AdjustmentScopeItem
	}

	adjustment := &entity.Adjustment{
		OrderID:     input.OrderID,
		OrderItemID: input.OrderItemID,
		Scope:       scope,
		Mode:        input.Mode,
		Value:       input.Value,
		Source:      enum.AdjustmentSourceManual,
		Reason:      input.Reason,
		UserID:      userID,
	}

	order, err := s.applyLocked(ctx, input.OrderID, adjustment, nil)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, event.NewAdjustmentApplied(order.TenantID, order.ID, adjustment.ID, adjustment.Source, userID))
	return adjustment, nil
}

// ApplyPromotion instantiates a promotion on an order, or on one item when
// itemID is given. The same promotion cannot hit the same target twice.
func (s *AdjustmentService) ApplyPromotion(ctx context.Context, orderID, promotionID uuid.UUID, itemID *uuid.UUID, userID uuid.UUID) (*entity.Adjustment, error) {
	promo, err := s.promoRepo.GetByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}

	scope := enum.AdjustmentScopeOrder
	if itemID != nil {
		scope = enum.AdjustmentScopeItem
	}
	if promo.Scope != scope {
		return nil, apperror.NewValidationError("Promotion scope does not match the target")
	}

	adjustment := &entity.Adjustment{
		OrderID:     orderID,
		OrderItemID: itemID,
		Scope:       scope,
		Mode:        promo.Mode,
		Value:       promo.Value,
		Source:      enum.AdjustmentSourcePromotion,
		PromotionID: &promo.ID,
		Reason:      promo.Name,
		UserID:      userID,
	}

	order, err := s.applyLocked(ctx, orderID, adjustment, promo)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, event.NewAdjustmentApplied(order.TenantID, order.ID, adjustment.ID, adjustment.Source, userID))
	return adjustment, nil
}

// ApplyPaymentMethodPromotion applies the best promotion gated on the given
// payment method, if any. It is idempotent per order: once a payment-method
// adjustment exists the call is a no-op. Candidates that fail their minimum
// total gate are skipped, not errors.
func (s *AdjustmentService) ApplyPaymentMethodPromotion(ctx context.Context, orderID uuid.UUID, methodCode string, userID uuid.UUID) (*entity.Adjustment, error) {
	var adjustment *entity.Adjustment
	var order *entity.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockMutableOrder(ctx, orderID)
		if err != nil {
			return err
		}

		exists, err := s.adjRepo.ExistsBySource(ctx, orderID, enum.AdjustmentSourcePaymentMethod)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		candidates, err := s.promoRepo.FindByMethodCode(ctx, order.BranchID, methodCode, s.now())
		if err != nil {
			return err
		}
		for i := range candidates {
			promo := &candidates[i]
			if promo.MinTotal != nil && order.SubTotal < *promo.MinTotal {
				continue
			}
			adjustment = &entity.Adjustment{
				OrderID:     orderID,
				Scope:       enum.AdjustmentScopeOrder,
				Mode:        promo.Mode,
				Value:       promo.Value,
				Source:      enum.AdjustmentSourcePaymentMethod,
				PromotionID: &promo.ID,
				Reason:      promo.Name,
				UserID:      userID,
			}
			if err := s.adjRepo.Create(ctx, adjustment); err != nil {
				return err
			}
			return recomputeOrder(ctx, s.orderRepo, s.itemRepo, s.adjRepo, s.paymentRepo, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if adjustment != nil {
		s.events.Publish(ctx, event.NewAdjustmentApplied(order.TenantID, order.ID, adjustment.ID, adjustment.Source, userID))
	}
	return adjustment, nil
}

// Remove deletes an adjustment from a mutable order and replays the totals
func (s *AdjustmentService) Remove(ctx context.Context, orderID, adjustmentID uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.lockMutableOrder(ctx, orderID)
		if err != nil {
			return err
		}

		adjustment, err := s.adjRepo.GetByID(ctx, adjustmentID)
		if err != nil {
			return err
		}
		if adjustment == nil || adjustment.OrderID != orderID {
			return apperror.NewNotFoundError("Adjustment")
		}

		if err := s.adjRepo.Delete(ctx, adjustmentID); err != nil {
			return err
		}
		return recomputeOrder(ctx, s.orderRepo, s.itemRepo, s.adjRepo, s.paymentRepo, order)
	})
}

// applyLocked runs the shared apply path: lock the order, check mutability and
// target validity, enforce promotion gates, persist and replay
func (s *AdjustmentService) applyLocked(ctx context.Context, orderID uuid.UUID, adjustment *entity.Adjustment, promo *entity.Promotion) (*entity.Order, error) {
	var order *entity.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockMutableOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if adjustment.OrderItemID != nil {
			item, err := s.itemRepo.GetByID(ctx, *adjustment.OrderItemID)
			if err != nil {
				return err
			}
			if item == nil || item.OrderID != orderID {
				return apperror.NewNotFoundError("Order item")
			}
		}

		if promo != nil {
			if err := s.checkPromotionGates(ctx, order, adjustment, promo); err != nil {
				return err
			}
		}

		if err := s.adjRepo.Create(ctx, adjustment); err != nil {
			return err
		}
		return recomputeOrder(ctx, s.orderRepo, s.itemRepo, s.adjRepo, s.paymentRepo, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *AdjustmentService) checkPromotionGates(ctx context.Context, order *entity.Order, adjustment *entity.Adjustment, promo *entity.Promotion) error {
	if !promo.Active {
		return apperror.NewValidationError("Promotion is not active")
	}
	if !promo.VigentOn(s.now()) {
		return apperror.NewValidationError("Promotion is not valid on this date")
	}
	if !promo.MatchesBranch(order.BranchID) {
		return apperror.NewValidationError("Promotion is not available at this branch")
	}
	if promo.MinTotal != nil && order.SubTotal < *promo.MinTotal {
		return apperror.NewValidationError("Order subtotal does not meet the promotion minimum")
	}

	applied, err := s.adjRepo.ExistsForPromotion(ctx, order.ID, promo.ID, adjustment.OrderItemID)
	if err != nil {
		return err
	}
	if applied {
		return apperror.NewConflictError("Promotion is already applied to this target")
	}
	return nil
}

func (s *AdjustmentService) lockMutableOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.Status.IsMutable() {
		return nil, apperror.NewStateError("Order in state " + order.Status.String() + " cannot be modified")
	}
	return order, nil
}

// validateAdjustmentValue checks mode-specific bounds on a discount value
func validateAdjustmentValue(mode enum.AdjustmentMode, value decimal.Decimal) error {
	if value.LessThanOrEqual(decimal.Zero) {
		return apperror.NewValidationError("Value must be greater than zero")
	}
	if mode == enum.AdjustmentModePercent && value.GreaterThan(oneHundredPct) {
		return apperror.NewValidationError("Percentage cannot exceed 100")
	}
	return nil
}

var oneHundredPct = decimal.NewFromInt(100)
