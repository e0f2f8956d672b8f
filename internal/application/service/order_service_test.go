package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/pkg/apperror"
)

func TestCreateOrderStartsAsDraft(t *testing.T) {
	env := newTestEnv()

	order := env.openOrder()
	if order.Status != enum.OrderStatusDraft {
		t.Fatalf("new order status = %v, want draft", order.Status)
	}
	if order.Total != 0 || order.BalanceDue != 0 {
		t.Fatalf("new order has non-zero totals: total=%d balance=%d", order.Total, order.BalanceDue)
	}
}

func TestCreateOrderRejectsVehicleOfOtherCustomer(t *testing.T) {
	env := newTestEnv()
	other := env.customer.ID
	other[0] ^= 0xff

	_, err := env.orders.CreateOrder(env.ctx, &CreateOrderInput{
		BranchID:   env.branch.ID,
		CustomerID: &other,
		VehicleID:  &env.vehicle.ID,
	}, env.userID)
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	env := newTestEnv()
	env.publishPrice(env.svcEntry.ID, 4000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	order := env.openOrder()

	updated, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, 1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if updated.SubTotal != 4000 || updated.Total != 4000 || updated.BalanceDue != 4000 {
		t.Fatalf("totals after add = sub %d total %d balance %d, want 4000 each",
			updated.SubTotal, updated.Total, updated.BalanceDue)
	}

	// Publishing a new price must not move the existing line.
	items, _ := env.itemRepo.GetByOrderID(env.ctx, order.ID)
	entry := env.publishPrice(env.svcEntry.ID, 9900, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	_ = entry
	itemsAfter, _ := env.itemRepo.GetByOrderID(env.ctx, order.ID)
	if items[0].UnitPrice != itemsAfter[0].UnitPrice {
		t.Fatalf("unit price moved after price publish: %d -> %d", items[0].UnitPrice, itemsAfter[0].UnitPrice)
	}
}

func TestAddItemWithoutPriceEntryFails(t *testing.T) {
	env := newTestEnv()
	order := env.openOrder()

	_, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, 1)
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found error without a price entry, got %v", err)
	}
}

func TestAddItemRejectsDuplicateService(t *testing.T) {
	env := newTestEnv()
	env.publishPrice(env.svcEntry.ID, 4000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	order := env.openOrder()

	if _, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, 1); err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	_, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, 2)
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict on duplicate service, got %v", err)
	}
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	env := newTestEnv()
	order := env.openOrder()

	for _, qty := range []int{0, -3} {
		if _, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, qty); !apperror.IsKind(err, apperror.KindValidation) {
			t.Errorf("quantity %d: expected validation error, got %v", qty, err)
		}
	}
}

func TestRemoveItemCascadesItemAdjustments(t *testing.T) {
	env := newTestEnv()
	env.publishPrice(env.svcEntry.ID, 4000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	order := env.openOrder()
	if _, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	items, _ := env.itemRepo.GetByOrderID(env.ctx, order.ID)

	if _, err := env.adjustments.AddManual(env.ctx, &AddManualInput{
		OrderID:     order.ID,
		OrderItemID: &items[0].ID,
		Mode:        enum.AdjustmentModePercent,
		Value:       dec(10),
		Reason:      "loyalty",
	}, env.userID); err != nil {
		t.Fatalf("AddManual: %v", err)
	}

	updated, err := env.orders.RemoveItem(env.ctx, order.ID, items[0].ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if updated.SubTotal != 0 || updated.Total != 0 {
		t.Fatalf("totals after remove = sub %d total %d, want 0", updated.SubTotal, updated.Total)
	}
	remaining, _ := env.adjRepo.GetByOrderID(env.ctx, order.ID)
	if len(remaining) != 0 {
		t.Fatalf("item adjustments survived item removal: %d left", len(remaining))
	}
}

func TestMutationsRejectedOnImmutableOrder(t *testing.T) {
	env := newTestEnv()
	env.publishPrice(env.svcEntry.ID, 4000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	order := env.openOrder()
	if _, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	payFull(t, env, order.ID, 4000)

	if _, err := env.orders.AddItem(env.ctx, order.ID, env.newService("wax").ID, 1); !apperror.IsKind(err, apperror.KindState) {
		t.Errorf("AddItem on paid order: expected state error, got %v", err)
	}
	if _, err := env.orders.SetTip(env.ctx, order.ID, 500); !apperror.IsKind(err, apperror.KindState) {
		t.Errorf("SetTip on paid order: expected state error, got %v", err)
	}
	if _, err := env.adjustments.AddManual(env.ctx, &AddManualInput{
		OrderID: order.ID,
		Mode:    enum.AdjustmentModeFixed,
		Value:   dec(1),
		Reason:  "late",
	}, env.userID); !apperror.IsKind(err, apperror.KindState) {
		t.Errorf("AddManual on paid order: expected state error, got %v", err)
	}
}

func TestTransitionTable(t *testing.T) {
	all := []enum.OrderStatus{
		enum.OrderStatusDraft,
		enum.OrderStatusInProgress,
		enum.OrderStatusPaid,
		enum.OrderStatusDone,
		enum.OrderStatusCancelled,
	}
	allowed := map[enum.OrderStatus][]enum.OrderStatus{
		enum.OrderStatusDraft:      {enum.OrderStatusInProgress, enum.OrderStatusPaid, enum.OrderStatusCancelled},
		enum.OrderStatusInProgress: {enum.OrderStatusDone, enum.OrderStatusPaid, enum.OrderStatusCancelled},
		enum.OrderStatusPaid:       {enum.OrderStatusDone, enum.OrderStatusCancelled},
		enum.OrderStatusDone:       {enum.OrderStatusCancelled},
		enum.OrderStatusCancelled:  {},
	}

	for from, targets := range allowed {
		ok := make(map[enum.OrderStatus]bool)
		for _, to := range targets {
			ok[to] = true
		}
		for _, to := range all {
			if from == to {
				continue
			}
			env := newTestEnv()
			order := env.openOrder()
			order.Status = from
			if err := env.orderRepo.Update(env.ctx, order); err != nil {
				t.Fatal(err)
			}

			_, err := env.orders.Transition(env.ctx, order.ID, to, env.userID)
			if ok[to] && err != nil {
				t.Errorf("%v -> %v: unexpected error %v", from, to, err)
			}
			if !ok[to] && !apperror.IsKind(err, apperror.KindState) {
				t.Errorf("%v -> %v: expected state error, got %v", from, to, err)
			}
		}
	}
}

func TestManualTransitionToPaidIgnoresBalance(t *testing.T) {
	env := newTestEnv()
	env.publishPrice(env.svcEntry.ID, 4000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	order := env.openOrder()
	if _, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// draft -> paid is a table edge, so it succeeds even with a balance due.
	updated, err := env.orders.Transition(env.ctx, order.ID, enum.OrderStatusPaid, env.userID)
	if err != nil {
		t.Fatalf("Transition to paid with open balance: %v", err)
	}
	if updated.Status != enum.OrderStatusPaid {
		t.Fatalf("status = %v, want paid", updated.Status)
	}
	if updated.BalanceDue != 4000 {
		t.Fatalf("balance after manual paid = %d, want 4000 untouched", updated.BalanceDue)
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	env := newTestEnv()
	order := env.openOrder()
	if _, err := env.orders.Transition(env.ctx, order.ID, enum.OrderStatusCancelled, env.userID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	for _, to := range []enum.OrderStatus{enum.OrderStatusDraft, enum.OrderStatusInProgress, enum.OrderStatusPaid, enum.OrderStatusDone} {
		if _, err := env.orders.Transition(env.ctx, order.ID, to, env.userID); !apperror.IsKind(err, apperror.KindState) {
			t.Errorf("cancelled -> %v: expected state error, got %v", to, err)
		}
	}
}

func TestSetTipFeedsTotal(t *testing.T) {
	env := newTestEnv()
	env.publishPrice(env.svcEntry.ID, 4000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	order := env.openOrder()
	if _, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	updated, err := env.orders.SetTip(env.ctx, order.ID, 600)
	if err != nil {
		t.Fatalf("SetTip: %v", err)
	}
	if updated.Total != 4600 || updated.BalanceDue != 4600 {
		t.Fatalf("after tip: total %d balance %d, want 4600", updated.Total, updated.BalanceDue)
	}

	if _, err := env.orders.SetTip(env.ctx, order.ID, -1); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("negative tip: expected validation error, got %v", err)
	}
}

func TestTransitionEmitsEvent(t *testing.T) {
	env := newTestEnv()
	order := env.openOrder()

	if _, err := env.orders.Transition(env.ctx, order.ID, enum.OrderStatusInProgress, env.userID); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	names := env.publisher.names()
	if len(names) != 1 || names[0] != "order.state_changed" {
		t.Fatalf("events = %v, want [order.state_changed]", names)
	}
}

// payFull registers one non-tip payment for the full balance
func payFull(t *testing.T, env *testEnv, orderID uuid.UUID, amount int64) {
	t.Helper()
	result, err := env.payments.RegisterPayment(env.ctx, &RegisterPaymentInput{
		OrderID:         orderID,
		PaymentMethodID: env.cashMethod.ID,
		Amount:          amount,
	}, env.userID)
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	if result.Order.Status != enum.OrderStatusPaid {
		t.Fatalf("order not paid after full payment, status=%v", result.Order.Status)
	}
}

// dec builds a decimal from an int for adjustment values
func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
