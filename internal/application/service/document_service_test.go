package service

import (
	"testing"

	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/pkg/apperror"
)

// settledOrder opens, fills and fully pays an order worth 40.00
func settledOrder(t *testing.T, env *testEnv) *entity.Order {
	t.Helper()
	env.publishPrice(env.svcEntry.ID, 4000, date(2025, 1, 1))
	order := env.openOrder()
	if _, err := env.orders.AddItem(env.ctx, order.ID, env.svcEntry.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	payFull(t, env, order.ID, 4000)
	settled, _ := env.orderRepo.GetByID(env.ctx, order.ID)
	return settled
}

func TestIssueInvoiceSnapshotsOrder(t *testing.T) {
	env := newTestEnv()
	order := settledOrder(t, env)

	doc, err := env.documents.Issue(env.ctx, &IssueInput{
		OrderID:      order.ID,
		DocumentType: enum.DocumentTypeInvoice,
		PointOfSale:  2,
	}, env.userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if doc.Number != 1 {
		t.Fatalf("document number = %d, want 1", doc.Number)
	}
	if doc.DisplayNo != "INV-0002-00000001" {
		t.Fatalf("display number = %q, want INV-0002-00000001", doc.DisplayNo)
	}
	if doc.Total != order.Total || doc.SubTotal != order.SubTotal {
		t.Fatalf("snapshot totals diverge from order: %d/%d vs %d/%d",
			doc.SubTotal, doc.Total, order.SubTotal, order.Total)
	}
	if len(doc.Lines) != 1 || doc.Lines[0].UnitPrice != 4000 {
		t.Fatalf("lines = %+v, want one line at 4000", doc.Lines)
	}
}

func TestIssueRequiresSettledOrder(t *testing.T) {
	env := newTestEnv()
	env.publishPrice(env.svcEntry.ID, 4000, date(2025, 1, 1))
	order := env.openOrder()

	_, err := env.documents.Issue(env.ctx, &IssueInput{
		OrderID:      order.ID,
		DocumentType: enum.DocumentTypeInvoice,
		PointOfSale:  1,
	}, env.userID)
	if !apperror.IsKind(err, apperror.KindState) {
		t.Fatalf("expected state error on draft order, got %v", err)
	}
}

func TestIssueSameTypeTwiceConflicts(t *testing.T) {
	env := newTestEnv()
	order := settledOrder(t, env)
	input := &IssueInput{OrderID: order.ID, DocumentType: enum.DocumentTypeInvoice, PointOfSale: 1}

	if _, err := env.documents.Issue(env.ctx, input, env.userID); err != nil {
		t.Fatalf("first issue: %v", err)
	}
	_, err := env.documents.Issue(env.ctx, input, env.userID)
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict on second issue, got %v", err)
	}

	// A different document type is still allowed.
	if _, err := env.documents.Issue(env.ctx, &IssueInput{
		OrderID:      order.ID,
		DocumentType: enum.DocumentTypeReceipt,
		PointOfSale:  1,
	}, env.userID); err != nil {
		t.Fatalf("receipt after invoice: %v", err)
	}
}

func TestIssueNumbersAreSequentialPerSeries(t *testing.T) {
	env := newTestEnv()

	for want := int64(1); want <= 3; want++ {
		order := settledOrder(t, env)
		doc, err := env.documents.Issue(env.ctx, &IssueInput{
			OrderID:      order.ID,
			DocumentType: enum.DocumentTypeInvoice,
			PointOfSale:  1,
		}, env.userID)
		if err != nil {
			t.Fatalf("issue %d: %v", want, err)
		}
		if doc.Number != want {
			t.Fatalf("document number = %d, want %d", doc.Number, want)
		}
	}
}

func TestIssueEmitsEvent(t *testing.T) {
	env := newTestEnv()
	order := settledOrder(t, env)

	if _, err := env.documents.Issue(env.ctx, &IssueInput{
		OrderID:      order.ID,
		DocumentType: enum.DocumentTypeInvoice,
		PointOfSale:  1,
	}, env.userID); err != nil {
		t.Fatal(err)
	}

	var seen bool
	for _, name := range env.publisher.names() {
		if name == "document.issued" {
			seen = true
		}
	}
	if !seen {
		t.Fatal("document.issued event not published")
	}
}
