package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus int

const (
	OrderStatusDraft      OrderStatus = 0
	OrderStatusInProgress OrderStatus = 1
	OrderStatusPaid       OrderStatus = 2
	OrderStatusDone       OrderStatus = 3
	OrderStatusCancelled  OrderStatus = 4
)

// orderTransitions is the full transition table. Cancelled is terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:      {OrderStatusInProgress, OrderStatusPaid, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusDone, OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusDone, OrderStatusCancelled},
	OrderStatusDone:       {OrderStatusCancelled},
	OrderStatusCancelled:  {},
}

// CanTransitionTo reports whether the edge s -> target is in the transition table
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsMutable reports whether items and adjustments may still be added or removed
func (s OrderStatus) IsMutable() bool {
	return s == OrderStatusDraft || s == OrderStatusInProgress
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusDraft:
		return "draft"
	case OrderStatusInProgress:
		return "in_progress"
	case OrderStatusPaid:
		return "paid"
	case OrderStatusDone:
		return "done"
	case OrderStatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// ParseOrderStatus converts a string into an OrderStatus
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch s {
	case "draft":
		return OrderStatusDraft, true
	case "in_progress":
		return OrderStatusInProgress, true
	case "paid":
		return OrderStatusPaid, true
	case "done":
		return OrderStatusDone, true
	case "cancelled":
		return OrderStatusCancelled, true
	}
	return OrderStatusDraft, false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	if parsed, ok := ParseOrderStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
