package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	domainRepo "github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/pkg/pagination"
	"gorm.io/gorm"
)

type adjustmentRepository struct {
	db *gorm.DB
}

// NewAdjustmentRepository creates a new adjustment repository
func NewAdjustmentRepository(db *gorm.DB) domainRepo.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

func (r *adjustmentRepository) Create(ctx context.Context, adjustment *entity.Adjustment) error {
	return dbFromContext(ctx, r.db).Create(adjustment).Error
}

func (r *adjustmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Adjustment, error) {
	var adjustment entity.Adjustment
	err := dbFromContext(ctx, r.db).First(&adjustment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &adjustment, err
}

func (r *adjustmentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Adjustment, error) {
	var adjustments []entity.Adjustment
	err := dbFromContext(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&adjustments).Error
	return adjustments, err
}

func (r *adjustmentRepository) ExistsForPromotion(ctx context.Context, orderID, promotionID uuid.UUID, itemID *uuid.UUID) (bool, error) {
	query := dbFromContext(ctx, r.db).Model(&entity.Adjustment{}).
		Where("order_id = ? AND promotion_id = ?", orderID, promotionID)
	if itemID != nil {
		query = query.Where("order_item_id = ?", *itemID)
	} else {
		query = query.Where("order_item_id IS NULL")
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *adjustmentRepository) ExistsBySource(ctx context.Context, orderID uuid.UUID, source enum.AdjustmentSource) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&entity.Adjustment{}).
		Where("order_id = ? AND source = ? AND order_item_id IS NULL", orderID, source).
		Count(&count).Error
	return count > 0, err
}

func (r *adjustmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).Delete(&entity.Adjustment{}, "id = ?", id).Error
}

func (r *adjustmentRepository) DeleteByOrderItemID(ctx context.Context, itemID uuid.UUID) error {
	return dbFromContext(ctx, r.db).Delete(&entity.Adjustment{}, "order_item_id = ?", itemID).Error
}

type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *gorm.DB) domainRepo.PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	return dbFromContext(ctx, r.db).Create(promotion).Error
}

func (r *promotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	var promotion entity.Promotion
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		First(&promotion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &promotion, err
}

func (r *promotionRepository) Update(ctx context.Context, promotion *entity.Promotion) error {
	return dbFromContext(ctx, r.db).Save(promotion).Error
}

func (r *promotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Delete(&entity.Promotion{}, "id = ?", id).Error
}

func (r *promotionRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Promotion, int64, error) {
	var promotions []entity.Promotion
	var total int64

	query := dbFromContext(ctx, r.db).Model(&entity.Promotion{}).Scopes(TenantScope(ctx))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&promotions).Error

	return promotions, total, err
}

// FindByMethodCode returns the method-gated candidates in selection order:
// priority ascending, then value descending so the strongest discount wins a
// priority tie.
func (r *promotionRepository) FindByMethodCode(ctx context.Context, branchID uuid.UUID, methodCode string, date time.Time) ([]entity.Promotion, error) {
	var promotions []entity.Promotion
	d := entity.DateOnly(date)
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Where("method_code = ? AND active = ?", methodCode, true).
		Where("starts_on <= ?", d).
		Where("ends_on IS NULL OR ends_on >= ?", d).
		Where("branch_id IS NULL OR branch_id = ?", branchID).
		Order("priority ASC, value DESC").
		Find(&promotions).Error
	return promotions, err
}
