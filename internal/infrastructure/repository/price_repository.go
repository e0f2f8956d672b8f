package repository

import (
	"context"
	"time"

	"github.com/washpoint/washpoint-api/internal/domain/entity"
	domainRepo "github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type priceRepository struct {
	db *gorm.DB
}

// NewPriceRepository creates a new price entry repository
func NewPriceRepository(db *gorm.DB) domainRepo.PriceRepository {
	return &priceRepository{db: db}
}

func (r *priceRepository) Create(ctx context.Context, entry *entity.PriceEntry) error {
	return dbFromContext(ctx, r.db).Create(entry).Error
}

func (r *priceRepository) Update(ctx context.Context, entry *entity.PriceEntry) error {
	return dbFromContext(ctx, r.db).Save(entry).Error
}

// FindCovering matches half-open windows: start <= date AND (end IS NULL OR
// date < end). The date is truncated to midnight UTC to match the date columns.
func (r *priceRepository) FindCovering(ctx context.Context, combo domainRepo.PriceCombination, date time.Time) ([]entity.PriceEntry, error) {
	var entries []entity.PriceEntry
	d := entity.DateOnly(date)
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Where("branch_id = ? AND service_id = ? AND vehicle_type_id = ?", combo.BranchID, combo.ServiceID, combo.VehicleTypeID).
		Where("active = ?", true).
		Where("start <= ?", d).
		Where(`"end" IS NULL OR "end" > ?`, d).
		Order("start DESC").
		Find(&entries).Error
	return entries, err
}

func (r *priceRepository) GetActiveForUpdate(ctx context.Context, combo domainRepo.PriceCombination) ([]entity.PriceEntry, error) {
	var entries []entity.PriceEntry
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("branch_id = ? AND service_id = ? AND vehicle_type_id = ?", combo.BranchID, combo.ServiceID, combo.VehicleTypeID).
		Where("active = ?", true).
		Order("start ASC").
		Find(&entries).Error
	return entries, err
}

func (r *priceRepository) List(ctx context.Context, combo *domainRepo.PriceCombination, params *pagination.PaginationParams) ([]entity.PriceEntry, int64, error) {
	var entries []entity.PriceEntry
	var total int64

	query := dbFromContext(ctx, r.db).Model(&entity.PriceEntry{}).Scopes(TenantScope(ctx))
	if combo != nil {
		query = query.Where("branch_id = ? AND service_id = ? AND vehicle_type_id = ?", combo.BranchID, combo.ServiceID, combo.VehicleTypeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("start DESC").
		Find(&entries).Error

	return entries, total, err
}
