package service

import (
	"sort"

	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
)

// OrderTotals is the result of replaying an order's items and adjustments
type OrderTotals struct {
	SubTotal int64
	Discount int64
	Total    int64
}

// ComputeOrderTotals replays all items and all adjustments from scratch. Totals
// are never maintained incrementally: replay is deterministic, so a full
// recomputation after every mutation cannot drift from partial updates.
//
// Item-scope adjustments apply first, per item, in creation order. Order-scope
// adjustments then apply to the order subtotal: manual before promotion before
// payment-method, in creation order within each source.
func ComputeOrderTotals(items []entity.OrderItem, adjustments []entity.Adjustment, tip int64) OrderTotals {
	itemAdj := make(map[string][]entity.Adjustment)
	var orderAdj []entity.Adjustment
	for _, a := range adjustments {
		if a.Scope == enum.AdjustmentScopeItem && a.OrderItemID != nil {
			key := a.OrderItemID.String()
			itemAdj[key] = append(itemAdj[key], a)
		} else {
			orderAdj = append(orderAdj, a)
		}
	}

	var subTotal int64
	for _, item := range items {
		basis := item.UnitPrice * int64(item.Quantity)
		applicable := itemAdj[item.ID.String()]
		sortAdjustments(applicable, false)
		for i := range applicable {
			basis = applicable[i].ApplyTo(basis)
		}
		subTotal += basis
	}

	sortAdjustments(orderAdj, true)
	orderBasis := subTotal
	for i := range orderAdj {
		orderBasis = orderAdj[i].ApplyTo(orderBasis)
	}

	discount := subTotal - orderBasis

	total := subTotal - discount + tip
	if total < 0 {
		total = 0
	}

	return OrderTotals{
		SubTotal: subTotal,
		Discount: discount,
		Total:    total,
	}
}

// sortAdjustments orders adjustments for deterministic replay. Creation order
// always applies; for order scope the source rank takes precedence so manual
// discounts apply before promotions, and promotions before payment-method ones.
func sortAdjustments(adjustments []entity.Adjustment, bySource bool) {
	sort.SliceStable(adjustments, func(i, j int) bool {
		if bySource && adjustments[i].Source != adjustments[j].Source {
			return adjustments[i].Source < adjustments[j].Source
		}
		if !adjustments[i].CreatedAt.Equal(adjustments[j].CreatedAt) {
			return adjustments[i].CreatedAt.Before(adjustments[j].CreatedAt)
		}
		return adjustments[i].ID.String() < adjustments[j].ID.String()
	})
}
