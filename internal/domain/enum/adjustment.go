package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AdjustmentScope says whether an adjustment applies to the whole order or a single item
type AdjustmentScope int

const (
	AdjustmentScopeOrder AdjustmentScope = 0
	AdjustmentScopeItem  AdjustmentScope = 1
)

func (s AdjustmentScope) String() string {
	if s == AdjustmentScopeItem {
		return "item"
	}
	return "order"
}

func (s AdjustmentScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AdjustmentScope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "item" {
		*s = AdjustmentScopeItem
	} else {
		*s = AdjustmentScopeOrder
	}
	return nil
}

func (s AdjustmentScope) Value() (driver.Value, error) { return int64(s), nil }

func (s *AdjustmentScope) Scan(value interface{}) error {
	if v, ok := value.(int64); ok {
		*s = AdjustmentScope(v)
	}
	return nil
}

// AdjustmentMode is how the adjustment value is interpreted
type AdjustmentMode int

const (
	AdjustmentModePercent AdjustmentMode = 0 // value is a percentage 0-100
	AdjustmentModeFixed   AdjustmentMode = 1 // value is a fixed currency amount
)

func (m AdjustmentMode) String() string {
	if m == AdjustmentModeFixed {
		return "fixed"
	}
	return "percent"
}

func (m AdjustmentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *AdjustmentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "fixed" {
		*m = AdjustmentModeFixed
	} else {
		*m = AdjustmentModePercent
	}
	return nil
}

func (m AdjustmentMode) Value() (driver.Value, error) { return int64(m), nil }

func (m *AdjustmentMode) Scan(value interface{}) error {
	if v, ok := value.(int64); ok {
		*m = AdjustmentMode(v)
	}
	return nil
}

// AdjustmentSource records where an adjustment came from. The numeric order doubles
// as the deterministic application rank for order-scope adjustments: manual before
// promotion before payment-method.
type AdjustmentSource int

const (
	AdjustmentSourceManual        AdjustmentSource = 0
	AdjustmentSourcePromotion     AdjustmentSource = 1
	AdjustmentSourcePaymentMethod AdjustmentSource = 2
)

func (s AdjustmentSource) String() string {
	switch s {
	case AdjustmentSourcePromotion:
		return "promotion"
	case AdjustmentSourcePaymentMethod:
		return "payment_method"
	}
	return "manual"
}

func (s AdjustmentSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AdjustmentSource) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "promotion":
		*s = AdjustmentSourcePromotion
	case "payment_method":
		*s = AdjustmentSourcePaymentMethod
	default:
		*s = AdjustmentSourceManual
	}
	return nil
}

func (s AdjustmentSource) Value() (driver.Value, error) { return int64(s), nil }

func (s *AdjustmentSource) Scan(value interface{}) error {
	if v, ok := value.(int64); ok {
		*s = AdjustmentSource(v)
	}
	return nil
}
