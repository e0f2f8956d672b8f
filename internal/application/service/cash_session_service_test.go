package service

import (
	"testing"
	"time"

	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/pkg/apperror"
)

func TestOpenSessionTwiceConflicts(t *testing.T) {
	env := newTestEnv()

	if _, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, ""); err != nil {
		t.Fatalf("first open: %v", err)
	}
	_, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, "")
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict on second open, got %v", err)
	}
}

func TestOpenSessionAfterCloseSucceeds(t *testing.T) {
	env := newTestEnv()

	session, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := env.sessions.Close(env.ctx, session.ID, env.userID, nil, ""); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, ""); err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
}

func TestCloseClosedSessionRejected(t *testing.T) {
	env := newTestEnv()

	session, _ := env.sessions.Open(env.ctx, env.branch.ID, env.userID, "")
	if _, err := env.sessions.Close(env.ctx, session.ID, env.userID, nil, ""); err != nil {
		t.Fatalf("close: %v", err)
	}
	_, err := env.sessions.Close(env.ctx, session.ID, env.userID, nil, "")
	if !apperror.IsKind(err, apperror.KindState) {
		t.Fatalf("expected state error closing twice, got %v", err)
	}
}

func TestCloseAppendsNotes(t *testing.T) {
	env := newTestEnv()

	session, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, "morning shift")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	closed, err := env.sessions.Close(env.ctx, session.ID, env.userID, nil, "drawer short by 2.00")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Notes != "morning shift\ndrawer short by 2.00" {
		t.Fatalf("notes = %q, want open and close notes appended", closed.Notes)
	}

	// Empty closing notes leave the running notes untouched.
	second, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, "evening shift")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	closed, err = env.sessions.Close(env.ctx, second.ID, env.userID, nil, "")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Notes != "evening shift" {
		t.Fatalf("notes = %q, want %q", closed.Notes, "evening shift")
	}
}

func TestCloseBeforeOpenRejected(t *testing.T) {
	env := newTestEnv()
	opened := date(2025, 6, 15)
	env.sessions.now = func() time.Time { return opened }

	session, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	env.sessions.now = func() time.Time { return opened.Add(-time.Hour) }
	_, err = env.sessions.Close(env.ctx, session.ID, env.userID, nil, "")
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error when clock runs backwards, got %v", err)
	}
}

func TestCloseReconcilesLedgerWindow(t *testing.T) {
	env := newTestEnv()
	base := date(2025, 6, 15)
	env.sessions.now = func() time.Time { return base }
	env.payments.now = func() time.Time { return base.Add(time.Hour) }

	// A payment before the session opens must not count.
	env.publishPrice(env.svcEntry.ID, 4000, date(2025, 1, 1))
	early := env.openOrder()
	if _, err := env.orders.AddItem(env.ctx, early.ID, env.svcEntry.ID, 1); err != nil {
		t.Fatal(err)
	}
	env.payments.now = func() time.Time { return base.Add(-time.Hour) }
	payFull(t, env, early.ID, 4000)

	session, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, "morning shift")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// Inside the window: 40.00 cash, 60.00 card plus a 5.00 cash tip.
	env.payments.now = func() time.Time { return base.Add(time.Hour) }
	inside := env.openOrder()
	if _, err := env.orders.AddItem(env.ctx, inside.ID, env.svcEntry.ID, 1); err != nil {
		t.Fatal(err)
	}
	payFull(t, env, inside.ID, 4000)

	detail := env.newService("detail")
	env.publishPrice(detail.ID, 6000, date(2025, 1, 1))
	second := env.openOrder()
	if _, err := env.orders.AddItem(env.ctx, second.ID, detail.ID, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := env.payments.RegisterPayment(env.ctx, &RegisterPaymentInput{
		OrderID:         second.ID,
		PaymentMethodID: env.cardMethod.ID,
		Amount:          6000,
	}, env.userID); err != nil {
		t.Fatal(err)
	}
	if _, err := env.payments.RegisterPayment(env.ctx, &RegisterPaymentInput{
		OrderID:         second.ID,
		PaymentMethodID: env.cashMethod.ID,
		Amount:          500,
		IsTip:           true,
	}, env.userID); err != nil {
		t.Fatal(err)
	}

	env.sessions.now = func() time.Time { return base.Add(8 * time.Hour) }
	closed, err := env.sessions.Close(env.ctx, session.ID, env.userID, []CountedAmount{
		{PaymentMethodID: env.cashMethod.ID, Total: 4000, Tips: 500},
		{PaymentMethodID: env.cardMethod.ID, Total: 5900},
	}, "")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.ClosedAt == nil || closed.ClosedByID == nil {
		t.Fatal("session not marked closed")
	}

	byMethod := make(map[string]entity.CashSessionCount)
	for _, c := range closed.Counts {
		switch c.PaymentMethodID {
		case env.cashMethod.ID:
			byMethod["cash"] = c
		case env.cardMethod.ID:
			byMethod["card"] = c
		}
	}

	cash := byMethod["cash"]
	if cash.ExpectedTotal != 4000 || cash.ExpectedTips != 500 {
		t.Fatalf("cash expected total %d tips %d, want 4000 and 500", cash.ExpectedTotal, cash.ExpectedTips)
	}
	if cash.CountedTotal != 4000 || cash.CountedTips != 500 {
		t.Fatalf("cash counted total %d tips %d, want 4000 and 500", cash.CountedTotal, cash.CountedTips)
	}

	card := byMethod["card"]
	if card.ExpectedTotal != 6000 {
		t.Fatalf("card expected total %d, want 6000 (early payment leaked into window?)", card.ExpectedTotal)
	}
	if card.CountedTotal != 5900 {
		t.Fatalf("card counted total %d, want 5900", card.CountedTotal)
	}
}

func TestCloseKeepsCountedOnlyMethods(t *testing.T) {
	env := newTestEnv()

	session, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	closed, err := env.sessions.Close(env.ctx, session.ID, env.userID, []CountedAmount{
		{PaymentMethodID: env.cashMethod.ID, Total: 1500},
	}, "")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(closed.Counts) != 1 {
		t.Fatalf("counts = %d, want 1", len(closed.Counts))
	}
	c := closed.Counts[0]
	if c.ExpectedTotal != 0 || c.CountedTotal != 1500 {
		t.Fatalf("counted-only row: expected %d counted %d, want 0 and 1500", c.ExpectedTotal, c.CountedTotal)
	}
}

func TestSessionEvents(t *testing.T) {
	env := newTestEnv()

	session, _ := env.sessions.Open(env.ctx, env.branch.ID, env.userID, "")
	if _, err := env.sessions.Close(env.ctx, session.ID, env.userID, nil, ""); err != nil {
		t.Fatal(err)
	}
	names := env.publisher.names()
	if len(names) != 2 || names[0] != "cash_session.opened" || names[1] != "cash_session.closed" {
		t.Fatalf("events = %v", names)
	}
}

func TestSecondBranchOpensIndependently(t *testing.T) {
	env := newTestEnv()
	other := &entity.Branch{TenantID: env.tenantID, Name: "North", Active: true}
	_ = env.branchRepo.Create(env.ctx, other)

	if _, err := env.sessions.Open(env.ctx, env.branch.ID, env.userID, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := env.sessions.Open(env.ctx, other.ID, env.userID, ""); err != nil {
		t.Fatalf("open at second branch: %v", err)
	}
}
