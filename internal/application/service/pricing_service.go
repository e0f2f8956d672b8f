package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/event"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	infraRepo "github.com/washpoint/washpoint-api/internal/infrastructure/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// PricingService resolves effective prices from the time-versioned price list
// and publishes new price versions
type PricingService struct {
	priceRepo       repository.PriceRepository
	branchRepo      repository.BranchRepository
	serviceRepo     repository.ServiceRepository
	vehicleTypeRepo repository.VehicleTypeRepository
	tx              repository.TxManager
	events          event.Publisher
}

// NewPricingService creates a new pricing service
func NewPricingService(
	priceRepo repository.PriceRepository,
	branchRepo repository.BranchRepository,
	serviceRepo repository.ServiceRepository,
	vehicleTypeRepo repository.VehicleTypeRepository,
	tx repository.TxManager,
	events event.Publisher,
) *PricingService {
	return &PricingService{
		priceRepo:       priceRepo,
		branchRepo:      branchRepo,
		serviceRepo:     serviceRepo,
		vehicleTypeRepo: vehicleTypeRepo,
		tx:              tx,
		events:          events,
	}
}

// Resolve returns the price entry whose validity window covers the given date
// for the exact (branch, service, vehicle type) combination. On ties the entry
// with the latest start wins. Items cannot be added to an order without a
// successful resolve.
func (s *PricingService) Resolve(ctx context.Context, combo repository.PriceCombination, date time.Time) (*entity.PriceEntry, error) {
	entries, err := s.priceRepo.FindCovering(ctx, combo, date)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperror.NewNotFoundError("Price entry")
	}
	return &entries[0], nil
}

// PublishPriceInput represents a price publication request
type PublishPriceInput struct {
	Combo    repository.PriceCombination
	Price    float64
	Currency string
	Start    time.Time
	End      *time.Time
}

// Publish inserts a new price entry for a combination, closing or clamping any
// active entry whose window would otherwise overlap. A backdated publish is
// clamped too: its end is pulled in to the start of the next existing entry.
// The operation runs under an exclusive lock on the combination's active
// entries, so concurrent publishes serialize and the no-overlap invariant holds.
func (s *PricingService) Publish(ctx context.Context, input *PublishPriceInput) (*entity.PriceEntry, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.Price <= 0 {
		return nil, apperror.NewValidationError("Price must be greater than zero")
	}
	start := entity.DateOnly(input.Start)
	var end *time.Time
	if input.End != nil {
		e := entity.DateOnly(*input.End)
		if e.Before(start) || e.Equal(start) {
			return nil, apperror.NewValidationError("End date must be after start date")
		}
		end = &e
	}

	if err := s.validateCombination(ctx, input.Combo); err != nil {
		return nil, err
	}

	priceCents := decimal.NewFromFloat(input.Price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	entry := &entity.PriceEntry{
		TenantID:      tenantID,
		BranchID:      input.Combo.BranchID,
		ServiceID:     input.Combo.ServiceID,
		VehicleTypeID: input.Combo.VehicleTypeID,
		Price:         priceCents,
		Currency:      currency,
		Start:         start,
		End:           end,
		Active:        true,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.priceRepo.GetActiveForUpdate(ctx, input.Combo)
		if err != nil {
			return err
		}

		var nextStart *time.Time
		for i := range active {
			existing := &active[i]
			existingStart := entity.DateOnly(existing.Start)
			if existingStart.Equal(start) {
				return apperror.NewConflictError("A price entry with the same start date already exists for this combination")
			}
			// Close open-ended entries and clamp any window that would
			// otherwise overlap the new one.
			if existingStart.Before(start) && (existing.End == nil || entity.DateOnly(*existing.End).After(start)) {
				closeAt := start
				existing.End = &closeAt
				if err := s.priceRepo.Update(ctx, existing); err != nil {
					return err
				}
			}
			if existingStart.After(start) && (nextStart == nil || existingStart.Before(*nextStart)) {
				ns := existingStart
				nextStart = &ns
			}
		}

		// A backdated publish must not spill into the window that follows it:
		// the new entry ends where the next existing entry begins.
		if nextStart != nil && (entry.End == nil || entry.End.After(*nextStart)) {
			entry.End = nextStart
		}

		return s.priceRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, event.NewPricePublished(tenantID, entry.ID, entry.BranchID, entry.ServiceID, entry.Price))
	return entry, nil
}

// ListPrices lists price entries, optionally filtered to one combination
func (s *PricingService) ListPrices(ctx context.Context, combo *repository.PriceCombination, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.PriceEntry], error) {
	entries, total, err := s.priceRepo.List(ctx, combo, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

func (s *PricingService) validateCombination(ctx context.Context, combo repository.PriceCombination) error {
	branch, err := s.branchRepo.GetByID(ctx, combo.BranchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}
	svc, err := s.serviceRepo.GetByID(ctx, combo.ServiceID)
	if err != nil {
		return err
	}
	if svc == nil {
		return apperror.NewNotFoundError("Service")
	}
	vt, err := s.vehicleTypeRepo.GetByID(ctx, combo.VehicleTypeID)
	if err != nil {
		return err
	}
	if vt == nil {
		return apperror.NewNotFoundError("Vehicle type")
	}
	return nil
}
