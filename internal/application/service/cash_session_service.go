package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/event"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	infraRepo "github.com/washpoint/washpoint-api/internal/infrastructure/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// CashSessionService opens and closes register sessions. A branch has at most
// one open session; closing aggregates the ledger over the session window and
// freezes per-method reconciliation rows.
type CashSessionService struct {
	sessionRepo repository.CashSessionRepository
	paymentRepo repository.PaymentRepository
	branchRepo  repository.BranchRepository
	tx          repository.TxManager
	events      event.Publisher
	now         func() time.Time
}

// NewCashSessionService creates a new cash session service
func NewCashSessionService(
	sessionRepo repository.CashSessionRepository,
	paymentRepo repository.PaymentRepository,
	branchRepo repository.BranchRepository,
	tx repository.TxManager,
	events event.Publisher,
) *CashSessionService {
	return &CashSessionService{
		sessionRepo: sessionRepo,
		paymentRepo: paymentRepo,
		branchRepo:  branchRepo,
		tx:          tx,
		events:      events,
		now:         time.Now,
	}
}

// Open starts a new session at the branch. A second open while one is already
// running is a conflict; the partial unique index backs up this pre-check.
func (s *CashSessionService) Open(ctx context.Context, branchID, userID uuid.UUID, notes string) (*entity.CashSession, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	session := &entity.CashSession{
		TenantID:   tenantID,
		BranchID:   branchID,
		OpenedAt:   s.now(),
		OpenedByID: userID,
		Notes:      notes,
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		open, err := s.sessionRepo.GetOpenByBranch(ctx, branchID)
		if err != nil {
			return err
		}
		if open != nil {
			return apperror.NewConflictError("Branch already has an open cash session")
		}
		return s.sessionRepo.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, event.NewCashSessionOpened(tenantID, session.ID, branchID, userID))
	return session, nil
}

// CountedAmount is what the operator counted for one payment method at close
type CountedAmount struct {
	PaymentMethodID uuid.UUID
	Total           int64 // cents
	Tips            int64 // cents
}

// Close reconciles and ends the session. Expected totals per method come from
// aggregating the ledger over [opened, closed); the operator's counted amounts
// are stored beside them. Methods with payments but no counted entry get a
// zero-counted row, so discrepancies are visible rather than silently dropped.
// Closing notes are appended to the session's running notes.
func (s *CashSessionService) Close(ctx context.Context, sessionID, userID uuid.UUID, counted []CountedAmount, notes string) (*entity.CashSession, error) {
	var session *entity.CashSession
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		session, err = s.sessionRepo.GetByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return apperror.NewNotFoundError("Cash session")
		}
		if !session.IsOpen() {
			return apperror.NewStateError("Cash session is already closed")
		}

		closedAt := s.now()
		if closedAt.Before(session.OpenedAt) {
			return apperror.NewValidationError("Close time cannot precede the open time")
		}

		expected, err := s.paymentRepo.AggregateForBranchWindow(ctx, session.BranchID, session.OpenedAt, closedAt)
		if err != nil {
			return err
		}

		countedByMethod := make(map[uuid.UUID]CountedAmount, len(counted))
		for _, c := range counted {
			countedByMethod[c.PaymentMethodID] = c
		}

		counts := make([]entity.CashSessionCount, 0, len(expected)+len(counted))
		seen := make(map[uuid.UUID]bool, len(expected))
		for _, e := range expected {
			seen[e.PaymentMethodID] = true
			c := countedByMethod[e.PaymentMethodID]
			counts = append(counts, entity.CashSessionCount{
				CashSessionID:   session.ID,
				PaymentMethodID: e.PaymentMethodID,
				ExpectedTotal:   e.Total,
				ExpectedTips:    e.Tips,
				CountedTotal:    c.Total,
				CountedTips:     c.Tips,
			})
		}
		// Counted entries for methods with no ledger activity still get a row
		// with zero expectations.
		for _, c := range counted {
			if seen[c.PaymentMethodID] {
				continue
			}
			counts = append(counts, entity.CashSessionCount{
				CashSessionID:   session.ID,
				PaymentMethodID: c.PaymentMethodID,
				CountedTotal:    c.Total,
				CountedTips:     c.Tips,
			})
		}
		if len(counts) > 0 {
			if err := s.sessionRepo.CreateCounts(ctx, counts); err != nil {
				return err
			}
		}

		session.ClosedAt = &closedAt
		session.ClosedByID = &userID
		session.Counts = counts
		if notes != "" {
			if session.Notes != "" {
				session.Notes += "\n"
			}
			session.Notes += notes
		}
		return s.sessionRepo.Update(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, event.NewCashSessionClosed(session.TenantID, session.ID, session.BranchID, userID))
	return session, nil
}

// GetSession returns a session by id
func (s *CashSessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Cash session")
	}
	return session, nil
}

// ListSessions lists sessions, optionally filtered by branch
func (s *CashSessionService) ListSessions(ctx context.Context, branchID *uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CashSession], error) {
	sessions, total, err := s.sessionRepo.List(ctx, branchID, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}
