package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	domainRepo "github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cashSessionRepository struct {
	db *gorm.DB
}

// NewCashSessionRepository creates a new cash session repository
func NewCashSessionRepository(db *gorm.DB) domainRepo.CashSessionRepository {
	return &cashSessionRepository{db: db}
}

func (r *cashSessionRepository) Create(ctx context.Context, session *entity.CashSession) error {
	return dbFromContext(ctx, r.db).Create(session).Error
}

func (r *cashSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Preload("Counts").
		Preload("Counts.PaymentMethod").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashSessionRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashSessionRepository) GetOpenByBranch(ctx context.Context, branchID uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		First(&session, "branch_id = ? AND closed_at IS NULL", branchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashSessionRepository) Update(ctx context.Context, session *entity.CashSession) error {
	return dbFromContext(ctx, r.db).Omit("Counts").Save(session).Error
}

func (r *cashSessionRepository) CreateCounts(ctx context.Context, counts []entity.CashSessionCount) error {
	if len(counts) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).Create(&counts).Error
}

func (r *cashSessionRepository) List(ctx context.Context, branchID *uuid.UUID, params *pagination.PaginationParams) ([]entity.CashSession, int64, error) {
	var sessions []entity.CashSession
	var total int64

	query := dbFromContext(ctx, r.db).Model(&entity.CashSession{}).Scopes(TenantScope(ctx))
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("opened_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}
