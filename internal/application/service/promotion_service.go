package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	infraRepo "github.com/washpoint/washpoint-api/internal/infrastructure/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// PromotionService manages promotion templates. Editing a template never touches
// adjustments already instantiated from it.
type PromotionService struct {
	promoRepo repository.PromotionRepository
}

// NewPromotionService creates a new promotion service
func NewPromotionService(promoRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promoRepo: promoRepo}
}

// CreatePromotionInput represents the create promotion input
type CreatePromotionInput struct {
	Name       string
	Scope      enum.AdjustmentScope
	Mode       enum.AdjustmentMode
	Value      decimal.Decimal
	Priority   int
	StartsOn   time.Time
	EndsOn     *time.Time
	BranchID   *uuid.UUID
	MinTotal   *int64 // cents
	MethodCode *string
}

// CreatePromotion creates a new promotion template
func (s *PromotionService) CreatePromotion(ctx context.Context, input *CreatePromotionInput) (*entity.Promotion, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if err := validateAdjustmentValue(input.Mode, input.Value); err != nil {
		return nil, err
	}
	startsOn := entity.DateOnly(input.StartsOn)
	var endsOn *time.Time
	if input.EndsOn != nil {
		e := entity.DateOnly(*input.EndsOn)
		if e.Before(startsOn) {
			return nil, apperror.NewValidationError("End date cannot precede start date")
		}
		endsOn = &e
	}
	if input.MinTotal != nil && *input.MinTotal < 0 {
		return nil, apperror.NewValidationError("Minimum total cannot be negative")
	}

	priority := input.Priority
	if priority == 0 {
		priority = 100
	}

	promotion := &entity.Promotion{
		TenantID:   tenantID,
		Name:       input.Name,
		Scope:      input.Scope,
		Mode:       input.Mode,
		Value:      input.Value,
		Active:     true,
		Priority:   priority,
		StartsOn:   startsOn,
		EndsOn:     endsOn,
		BranchID:   input.BranchID,
		MinTotal:   input.MinTotal,
		MethodCode: input.MethodCode,
	}
	if err := s.promoRepo.Create(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// GetPromotion retrieves a promotion by ID
func (s *PromotionService) GetPromotion(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	promotion, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}
	return promotion, nil
}

// ListPromotions lists promotions with pagination
func (s *PromotionService) ListPromotions(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Promotion], error) {
	promotions, total, err := s.promoRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(promotions, pag), nil
}

// UpdatePromotionInput represents the update promotion input
type UpdatePromotionInput struct {
	ID       uuid.UUID
	Name     *string
	Active   *bool
	Priority *int
	EndsOn   *time.Time
	MinTotal *int64
}

// UpdatePromotion updates mutable fields of a promotion template
func (s *PromotionService) UpdatePromotion(ctx context.Context, input *UpdatePromotionInput) (*entity.Promotion, error) {
	promotion, err := s.promoRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}

	if input.Name != nil {
		promotion.Name = *input.Name
	}
	if input.Active != nil {
		promotion.Active = *input.Active
	}
	if input.Priority != nil {
		promotion.Priority = *input.Priority
	}
	if input.EndsOn != nil {
		e := entity.DateOnly(*input.EndsOn)
		if e.Before(entity.DateOnly(promotion.StartsOn)) {
			return nil, apperror.NewValidationError("End date cannot precede start date")
		}
		promotion.EndsOn = &e
	}
	if input.MinTotal != nil {
		promotion.MinTotal = input.MinTotal
	}

	if err := s.promoRepo.Update(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// DeletePromotion soft-deletes a promotion template. Adjustments already
// instantiated from it stay on their orders.
func (s *PromotionService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	promotion, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return apperror.NewNotFoundError("Promotion")
	}
	return s.promoRepo.Delete(ctx, id)
}
