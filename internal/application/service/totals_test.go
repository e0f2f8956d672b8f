package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
)

func item(id uuid.UUID, unitPrice int64, qty int) entity.OrderItem {
	return entity.OrderItem{ID: id, UnitPrice: unitPrice, Quantity: qty, Total: unitPrice * int64(qty)}
}

func adj(scope enum.AdjustmentScope, mode enum.AdjustmentMode, value float64, source enum.AdjustmentSource, itemID *uuid.UUID, at time.Time) entity.Adjustment {
	return entity.Adjustment{
		ID:          uuid.New(),
		OrderItemID: itemID,
		Scope:       scope,
		Mode:        mode,
		Value:       decimal.NewFromFloat(value),
		Source:      source,
		CreatedAt:   at,
	}
}

func TestComputeOrderTotals(t *testing.T) {
	itemA := uuid.New()
	itemB := uuid.New()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		items       []entity.OrderItem
		adjustments []entity.Adjustment
		tip         int64
		want        OrderTotals
	}{
		{
			name: "no adjustments",
			items: []entity.OrderItem{
				item(itemA, 4000, 1),
				item(itemB, 6000, 1),
			},
			want: OrderTotals{SubTotal: 10000, Discount: 0, Total: 10000},
		},
		{
			name: "item percent then order fixed",
			items: []entity.OrderItem{
				item(itemA, 4000, 1),
				item(itemB, 6000, 1),
			},
			adjustments: []entity.Adjustment{
				adj(enum.AdjustmentScopeItem, enum.AdjustmentModePercent, 10, enum.AdjustmentSourceManual, &itemA, base),
				adj(enum.AdjustmentScopeOrder, enum.AdjustmentModeFixed, 5, enum.AdjustmentSourceManual, nil, base.Add(time.Minute)),
			},
			// 40 at 10 percent off is 36, plus 60 is 96, minus 5 is 91
			want: OrderTotals{SubTotal: 9600, Discount: 500, Total: 9100},
		},
		{
			name: "order scope applies manual before promotion before payment method",
			items: []entity.OrderItem{
				item(itemA, 10000, 1),
			},
			adjustments: []entity.Adjustment{
				// Deliberately created out of source order
				adj(enum.AdjustmentScopeOrder, enum.AdjustmentModePercent, 10, enum.AdjustmentSourcePaymentMethod, nil, base),
				adj(enum.AdjustmentScopeOrder, enum.AdjustmentModeFixed, 20, enum.AdjustmentSourceManual, nil, base.Add(time.Minute)),
				adj(enum.AdjustmentScopeOrder, enum.AdjustmentModePercent, 50, enum.AdjustmentSourcePromotion, nil, base.Add(2*time.Minute)),
			},
			// 100 minus 20 manual is 80, half off promotion is 40, 10 percent
			// payment method is 36
			want: OrderTotals{SubTotal: 10000, Discount: 6400, Total: 3600},
		},
		{
			name: "item adjustments apply in creation order",
			items: []entity.OrderItem{
				item(itemA, 10000, 1),
			},
			adjustments: []entity.Adjustment{
				adj(enum.AdjustmentScopeItem, enum.AdjustmentModeFixed, 50, enum.AdjustmentSourceManual, &itemA, base),
				adj(enum.AdjustmentScopeItem, enum.AdjustmentModePercent, 10, enum.AdjustmentSourceManual, &itemA, base.Add(time.Second)),
			},
			// 100 minus 50 is 50, then 10 percent off is 45
			want: OrderTotals{SubTotal: 4500, Discount: 0, Total: 4500},
		},
		{
			name: "quantity multiplies unit price",
			items: []entity.OrderItem{
				item(itemA, 2500, 3),
			},
			want: OrderTotals{SubTotal: 7500, Discount: 0, Total: 7500},
		},
		{
			name: "tip is added after discounts",
			items: []entity.OrderItem{
				item(itemA, 4000, 1),
			},
			adjustments: []entity.Adjustment{
				adj(enum.AdjustmentScopeOrder, enum.AdjustmentModeFixed, 10, enum.AdjustmentSourceManual, nil, base),
			},
			tip:  500,
			want: OrderTotals{SubTotal: 4000, Discount: 1000, Total: 3500},
		},
		{
			name: "fixed discount larger than basis floors at zero",
			items: []entity.OrderItem{
				item(itemA, 1000, 1),
			},
			adjustments: []entity.Adjustment{
				adj(enum.AdjustmentScopeOrder, enum.AdjustmentModeFixed, 50, enum.AdjustmentSourceManual, nil, base),
			},
			want: OrderTotals{SubTotal: 1000, Discount: 1000, Total: 0},
		},
		{
			name: "empty order",
			want: OrderTotals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeOrderTotals(tt.items, tt.adjustments, tt.tip)
			if got != tt.want {
				t.Errorf("ComputeOrderTotals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeOrderTotalsIsDeterministic(t *testing.T) {
	itemA := uuid.New()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	items := []entity.OrderItem{item(itemA, 12345, 2)}
	adjustments := []entity.Adjustment{
		adj(enum.AdjustmentScopeOrder, enum.AdjustmentModePercent, 7, enum.AdjustmentSourcePromotion, nil, base),
		adj(enum.AdjustmentScopeItem, enum.AdjustmentModePercent, 3, enum.AdjustmentSourceManual, &itemA, base),
	}

	first := ComputeOrderTotals(items, adjustments, 250)
	for i := 0; i < 50; i++ {
		if got := ComputeOrderTotals(items, adjustments, 250); got != first {
			t.Fatalf("replay %d produced %+v, first produced %+v", i, got, first)
		}
	}
}
