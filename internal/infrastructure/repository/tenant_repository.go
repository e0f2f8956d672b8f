package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	domainRepo "github.com/washpoint/washpoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) domainRepo.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	return dbFromContext(ctx, r.db).Create(tenant).Error
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := dbFromContext(ctx, r.db).First(&tenant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tenant, err
}

func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := dbFromContext(ctx, r.db).First(&tenant, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tenant, err
}

func (r *tenantRepository) Update(ctx context.Context, tenant *entity.Tenant) error {
	return dbFromContext(ctx, r.db).Save(tenant).Error
}

func (r *tenantRepository) List(ctx context.Context) ([]entity.Tenant, error) {
	var tenants []entity.Tenant
	err := dbFromContext(ctx, r.db).Order("name ASC").Find(&tenants).Error
	return tenants, err
}

func (r *tenantRepository) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&entity.TenantMembership{}).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *tenantRepository) AddMember(ctx context.Context, membership *entity.TenantMembership) error {
	return dbFromContext(ctx, r.db).Create(membership).Error
}

func (r *tenantRepository) RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	return dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Delete(&entity.TenantMembership{}).Error
}

func (r *tenantRepository) ListMembers(ctx context.Context, tenantID uuid.UUID) ([]entity.TenantMembership, error) {
	var memberships []entity.TenantMembership
	err := dbFromContext(ctx, r.db).
		Preload("User").
		Where("tenant_id = ?", tenantID).
		Find(&memberships).Error
	return memberships, err
}

func (r *tenantRepository) GetTenantsForUser(ctx context.Context, userID uuid.UUID) ([]entity.Tenant, error) {
	var tenants []entity.Tenant
	err := dbFromContext(ctx, r.db).
		Joins("JOIN tenant_memberships ON tenant_memberships.tenant_id = tenants.id").
		Where("tenant_memberships.user_id = ?", userID).
		Find(&tenants).Error
	return tenants, err
}

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return dbFromContext(ctx, r.db).Create(branch).Error
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) List(ctx context.Context) ([]entity.Branch, error) {
	var branches []entity.Branch
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Order("name ASC").
		Find(&branches).Error
	return branches, err
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return dbFromContext(ctx, r.db).Save(branch).Error
}

func (r *branchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Delete(&entity.Branch{}, "id = ?", id).Error
}
