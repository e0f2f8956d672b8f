package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
)

// Event is a domain-level fact emitted by the core after a successful commit.
// Audit persistence is an external concern: the core publishes, subscribers decide
// what to store.
type Event interface {
	Name() string
	OccurredAt() time.Time
}

// Publisher delivers events to subscribers. Publish is called after the enclosing
// transaction commits, never inside it.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type base struct {
	At time.Time `json:"at"`
}

func (b base) OccurredAt() time.Time { return b.At }

func newBase() base { return base{At: time.Now().UTC()} }

// OrderStateChanged is emitted on every lifecycle transition
type OrderStateChanged struct {
	base
	TenantID uuid.UUID        `json:"tenant_id"`
	OrderID  uuid.UUID        `json:"order_id"`
	From     enum.OrderStatus `json:"from"`
	To       enum.OrderStatus `json:"to"`
	ActorID  uuid.UUID        `json:"actor_id"`
}

func (OrderStateChanged) Name() string { return "order.state_changed" }

// NewOrderStateChanged builds an OrderStateChanged event
func NewOrderStateChanged(tenantID, orderID uuid.UUID, from, to enum.OrderStatus, actorID uuid.UUID) OrderStateChanged {
	return OrderStateChanged{base: newBase(), TenantID: tenantID, OrderID: orderID, From: from, To: to, ActorID: actorID}
}

// PaymentRegistered is emitted when a payment row is persisted
type PaymentRegistered struct {
	base
	TenantID  uuid.UUID `json:"tenant_id"`
	OrderID   uuid.UUID `json:"order_id"`
	PaymentID uuid.UUID `json:"payment_id"`
	Amount    int64     `json:"amount"`
	IsTip     bool      `json:"is_tip"`
	ActorID   uuid.UUID `json:"actor_id"`
}

func (PaymentRegistered) Name() string { return "payment.registered" }

// NewPaymentRegistered builds a PaymentRegistered event
func NewPaymentRegistered(tenantID, orderID, paymentID uuid.UUID, amount int64, isTip bool, actorID uuid.UUID) PaymentRegistered {
	return PaymentRegistered{base: newBase(), TenantID: tenantID, OrderID: orderID, PaymentID: paymentID, Amount: amount, IsTip: isTip, ActorID: actorID}
}

// AdjustmentApplied is emitted when an adjustment is created on an order
type AdjustmentApplied struct {
	base
	TenantID     uuid.UUID             `json:"tenant_id"`
	OrderID      uuid.UUID             `json:"order_id"`
	AdjustmentID uuid.UUID             `json:"adjustment_id"`
	Source       enum.AdjustmentSource `json:"source"`
	ActorID      uuid.UUID             `json:"actor_id"`
}

func (AdjustmentApplied) Name() string { return "adjustment.applied" }

// NewAdjustmentApplied builds an AdjustmentApplied event
func NewAdjustmentApplied(tenantID, orderID, adjustmentID uuid.UUID, source enum.AdjustmentSource, actorID uuid.UUID) AdjustmentApplied {
	return AdjustmentApplied{base: newBase(), TenantID: tenantID, OrderID: orderID, AdjustmentID: adjustmentID, Source: source, ActorID: actorID}
}

// PricePublished is emitted when a new price entry becomes the current version
type PricePublished struct {
	base
	TenantID     uuid.UUID `json:"tenant_id"`
	PriceEntryID uuid.UUID `json:"price_entry_id"`
	BranchID     uuid.UUID `json:"branch_id"`
	ServiceID    uuid.UUID `json:"service_id"`
	Price        int64     `json:"price"`
}

func (PricePublished) Name() string { return "price.published" }

// NewPricePublished builds a PricePublished event
func NewPricePublished(tenantID, entryID, branchID, serviceID uuid.UUID, price int64) PricePublished {
	return PricePublished{base: newBase(), TenantID: tenantID, PriceEntryID: entryID, BranchID: branchID, ServiceID: serviceID, Price: price}
}

// CashSessionOpened is emitted when a register session opens
type CashSessionOpened struct {
	base
	TenantID  uuid.UUID `json:"tenant_id"`
	SessionID uuid.UUID `json:"session_id"`
	BranchID  uuid.UUID `json:"branch_id"`
	ActorID   uuid.UUID `json:"actor_id"`
}

func (CashSessionOpened) Name() string { return "cash_session.opened" }

// NewCashSessionOpened builds a CashSessionOpened event
func NewCashSessionOpened(tenantID, sessionID, branchID, actorID uuid.UUID) CashSessionOpened {
	return CashSessionOpened{base: newBase(), TenantID: tenantID, SessionID: sessionID, BranchID: branchID, ActorID: actorID}
}

// CashSessionClosed is emitted when a register session is reconciled and closed
type CashSessionClosed struct {
	base
	TenantID  uuid.UUID `json:"tenant_id"`
	SessionID uuid.UUID `json:"session_id"`
	BranchID  uuid.UUID `json:"branch_id"`
	ActorID   uuid.UUID `json:"actor_id"`
}

func (CashSessionClosed) Name() string { return "cash_session.closed" }

// NewCashSessionClosed builds a CashSessionClosed event
func NewCashSessionClosed(tenantID, sessionID, branchID, actorID uuid.UUID) CashSessionClosed {
	return CashSessionClosed{base: newBase(), TenantID: tenantID, SessionID: sessionID, BranchID: branchID, ActorID: actorID}
}

// DocumentIssued is emitted when a numbered document snapshot is created
type DocumentIssued struct {
	base
	TenantID   uuid.UUID `json:"tenant_id"`
	DocumentID uuid.UUID `json:"document_id"`
	OrderID    uuid.UUID `json:"order_id"`
	DisplayNo  string    `json:"display_no"`
	ActorID    uuid.UUID `json:"actor_id"`
}

func (DocumentIssued) Name() string { return "document.issued" }

// NewDocumentIssued builds a DocumentIssued event
func NewDocumentIssued(tenantID, documentID, orderID uuid.UUID, displayNo string, actorID uuid.UUID) DocumentIssued {
	return DocumentIssued{base: newBase(), TenantID: tenantID, DocumentID: documentID, OrderID: orderID, DisplayNo: displayNo, ActorID: actorID}
}

// NopPublisher discards all events; used where no subscriber is wired
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(ctx context.Context, e Event) {}
