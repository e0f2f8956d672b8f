package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/internal/domain/event"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	infraRepo "github.com/washpoint/washpoint-api/internal/infrastructure/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// OrderService drives the order lifecycle and keeps totals consistent across
// item mutations. Every change to an order's lines triggers a full replay of
// items and adjustments.
type OrderService struct {
	orderRepo   repository.OrderRepository
	itemRepo    repository.OrderItemRepository
	adjRepo     repository.AdjustmentRepository
	paymentRepo repository.PaymentRepository
	branchRepo  repository.BranchRepository
	vehicleRepo repository.VehicleRepository
	pricing     *PricingService
	tx          repository.TxManager
	events      event.Publisher
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	adjRepo repository.AdjustmentRepository,
	paymentRepo repository.PaymentRepository,
	branchRepo repository.BranchRepository,
	vehicleRepo repository.VehicleRepository,
	pricing *PricingService,
	tx repository.TxManager,
	events event.Publisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		adjRepo:     adjRepo,
		paymentRepo: paymentRepo,
		branchRepo:  branchRepo,
		vehicleRepo: vehicleRepo,
		pricing:     pricing,
		tx:          tx,
		events:      events,
	}
}

// CreateOrderInput represents the data needed to open a new order
type CreateOrderInput struct {
	BranchID   uuid.UUID
	CustomerID *uuid.UUID
	VehicleID  *uuid.UUID
	Notes      *string
}

// CreateOrder opens a new order in draft state with no items
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput, userID uuid.UUID) (*entity.Order, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.VehicleID != nil {
		vehicle, err := s.vehicleRepo.GetByID(ctx, *input.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			return nil, apperror.NewNotFoundError("Vehicle")
		}
		if input.CustomerID != nil && vehicle.CustomerID != *input.CustomerID {
			return nil, apperror.NewValidationError("Vehicle does not belong to the given customer")
		}
	}

	order := &entity.Order{
		TenantID:   tenantID,
		BranchID:   input.BranchID,
		UserID:     userID,
		CustomerID: input.CustomerID,
		VehicleID:  input.VehicleID,
		Status:     enum.OrderStatusDraft,
		Notes:      input.Notes,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns an order with its items, adjustments and payments
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filters and pagination
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// AddItem adds a service line to a mutable order. The unit price is resolved
// from the price list for the order's branch and the vehicle's type on the
// order's date, then frozen on the line. A service may appear at most once per
// order; to change the quantity the line is removed and re-added.
func (s *OrderService) AddItem(ctx context.Context, orderID, serviceID uuid.UUID, quantity int) (*entity.Order, error) {
	if quantity < 1 {
		return nil, apperror.NewValidationError("Quantity must be at least 1")
	}

	var order *entity.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockMutableOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.VehicleID == nil {
			return apperror.NewValidationError("Order has no vehicle; items cannot be priced")
		}

		existing, err := s.itemRepo.GetByOrderAndService(ctx, orderID, serviceID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Service is already on this order")
		}

		vehicle, err := s.vehicleRepo.GetByID(ctx, *order.VehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return apperror.NewNotFoundError("Vehicle")
		}

		combo := repository.PriceCombination{
			BranchID:      order.BranchID,
			ServiceID:     serviceID,
			VehicleTypeID: vehicle.VehicleTypeID,
		}
		entry, err := s.pricing.Resolve(ctx, combo, order.CreatedAt)
		if err != nil {
			return err
		}

		item := &entity.OrderItem{
			OrderID:   orderID,
			ServiceID: serviceID,
			Quantity:  quantity,
			UnitPrice: entry.Price,
			Total:     entry.Price * int64(quantity),
		}
		if err := s.itemRepo.Create(ctx, item); err != nil {
			return err
		}

		return recomputeOrder(ctx, s.orderRepo, s.itemRepo, s.adjRepo, s.paymentRepo, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RemoveItem removes a line from a mutable order along with any adjustments
// that were scoped to it
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockMutableOrder(ctx, orderID)
		if err != nil {
			return err
		}

		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return apperror.NewNotFoundError("Order item")
		}

		if err := s.adjRepo.DeleteByOrderItemID(ctx, itemID); err != nil {
			return err
		}
		if err := s.itemRepo.Delete(ctx, itemID); err != nil {
			return err
		}

		return recomputeOrder(ctx, s.orderRepo, s.itemRepo, s.adjRepo, s.paymentRepo, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// SetTip sets the tip amount on a mutable order, in cents
func (s *OrderService) SetTip(ctx context.Context, orderID uuid.UUID, tip int64) (*entity.Order, error) {
	if tip < 0 {
		return nil, apperror.NewValidationError("Tip cannot be negative")
	}

	var order *entity.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockMutableOrder(ctx, orderID)
		if err != nil {
			return err
		}
		order.Tip = tip
		return recomputeOrder(ctx, s.orderRepo, s.itemRepo, s.adjRepo, s.paymentRepo, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Transition moves the order to a new lifecycle state. The move succeeds
// exactly when the (from, target) pair is in the transition table; a manual
// move to paid is allowed even with a balance still due, since settling the
// ledger is the payment flow's concern, not the state machine's.
func (s *OrderService) Transition(ctx context.Context, orderID uuid.UUID, target enum.OrderStatus, actorID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	var from enum.OrderStatus
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		from = order.Status
		if !from.CanTransitionTo(target) {
			return apperror.NewStateError("Cannot transition order from " + from.String() + " to " + target.String())
		}

		order.Status = target
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, event.NewOrderStateChanged(order.TenantID, order.ID, from, target, actorID))
	return order, nil
}

// lockMutableOrder loads the order under an exclusive lock and rejects the call
// unless the order is still in a mutable state
func (s *OrderService) lockMutableOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
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

// recomputeOrder replays the order's items and adjustments, refreshes the stored
// totals and recomputes the balance against the payment ledger. It must run
// inside the transaction that holds the order's row lock.
func recomputeOrder(
	ctx context.Context,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	adjRepo repository.AdjustmentRepository,
	paymentRepo repository.PaymentRepository,
	order *entity.Order,
) error {
	items, err := itemRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	adjustments, err := adjRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	totals := ComputeOrderTotals(items, adjustments, order.Tip)

	paid, err := paymentRepo.SumNonTip(ctx, order.ID)
	if err != nil {
		return err
	}

	order.SubTotal = totals.SubTotal
	order.Discount = totals.Discount
	order.Total = totals.Total
	order.BalanceDue = totals.Total - paid
	if order.BalanceDue < 0 {
		order.BalanceDue = 0
	}
	return orderRepo.Update(ctx, order)
}
