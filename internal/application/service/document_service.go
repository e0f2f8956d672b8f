package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/internal/domain/event"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
	"github.com/washpoint/washpoint-api/pkg/utils"
)

// DocumentService emits numbered, immutable snapshots of settled orders. Number
// allocation and snapshot creation share one transaction, so a failed emission
// never burns a number.
type DocumentService struct {
	documentRepo repository.DocumentRepository
	orderRepo    repository.OrderRepository
	itemRepo     repository.OrderItemRepository
	sequences    *SequenceService
	tx           repository.TxManager
	events       event.Publisher
	now          func() time.Time
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documentRepo repository.DocumentRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	sequences *SequenceService,
	tx repository.TxManager,
	events event.Publisher,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		sequences:    sequences,
		tx:           tx,
		events:       events,
		now:          time.Now,
	}
}

// IssueInput represents a document emission request
type IssueInput struct {
	OrderID      uuid.UUID
	DocumentType enum.DocumentType
	PointOfSale  int
}

// Issue emits a document for a settled order. Only paid or done orders qualify,
// and an order carries at most one document per type.
func (s *DocumentService) Issue(ctx context.Context, input *IssueInput, userID uuid.UUID) (*entity.Document, error) {
	if !input.DocumentType.Valid() {
		return nil, apperror.NewValidationError("Unknown document type")
	}

	var document *entity.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status != enum.OrderStatusPaid && order.Status != enum.OrderStatusDone {
			return apperror.NewStateError("Documents can only be issued for paid or done orders")
		}

		existing, err := s.documentRepo.GetByOrderAndType(ctx, order.ID, string(input.DocumentType))
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Order already has a " + string(input.DocumentType))
		}

		number, err := s.sequences.AllocateNext(ctx, order.BranchID, input.DocumentType, input.PointOfSale)
		if err != nil {
			return err
		}

		items, err := s.itemRepo.GetByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}

		document = &entity.Document{
			TenantID:     order.TenantID,
			BranchID:     order.BranchID,
			OrderID:      order.ID,
			DocumentType: input.DocumentType,
			PointOfSale:  input.PointOfSale,
			Number:       number,
			DisplayNo:    utils.FormatDocumentNumber(input.DocumentType.Prefix(), input.PointOfSale, number),
			SubTotal:     order.SubTotal,
			Discount:     order.Discount,
			Tip:          order.Tip,
			Total:        order.Total,
			IssuedAt:     s.now(),
			IssuedByID:   userID,
		}
		if order.Customer != nil {
			document.CustomerName = &order.Customer.Name
		}
		if order.Vehicle != nil {
			document.VehiclePlate = &order.Vehicle.Plate
		}
		if err := s.documentRepo.Create(ctx, document); err != nil {
			return err
		}

		lines := make([]entity.DocumentLine, 0, len(items))
		for _, item := range items {
			name := item.Service.Name
			lines = append(lines, entity.DocumentLine{
				DocumentID:  document.ID,
				ServiceName: name,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Total:       item.Total,
			})
		}
		if len(lines) > 0 {
			if err := s.documentRepo.CreateLines(ctx, lines); err != nil {
				return err
			}
		}
		document.Lines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, event.NewDocumentIssued(document.TenantID, document.ID, document.OrderID, document.DisplayNo, userID))
	return document, nil
}

// GetDocument returns a document by id
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	return document, nil
}
