package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	domainRepo "github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/pkg/pagination"
	"gorm.io/gorm"
)

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service catalog repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return dbFromContext(ctx, r.db).Create(service).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *serviceRepository) List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.Service, int64, error) {
	var services []entity.Service
	var total int64

	query := dbFromContext(ctx, r.db).Model(&entity.Service{}).Scopes(TenantScope(ctx))
	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&services).Error

	return services, total, err
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return dbFromContext(ctx, r.db).Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Delete(&entity.Service{}, "id = ?", id).Error
}

type vehicleTypeRepository struct {
	db *gorm.DB
}

// NewVehicleTypeRepository creates a new vehicle type repository
func NewVehicleTypeRepository(db *gorm.DB) domainRepo.VehicleTypeRepository {
	return &vehicleTypeRepository{db: db}
}

func (r *vehicleTypeRepository) Create(ctx context.Context, vehicleType *entity.VehicleType) error {
	return dbFromContext(ctx, r.db).Create(vehicleType).Error
}

func (r *vehicleTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.VehicleType, error) {
	var vehicleType entity.VehicleType
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		First(&vehicleType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vehicleType, err
}

func (r *vehicleTypeRepository) List(ctx context.Context) ([]entity.VehicleType, error) {
	var vehicleTypes []entity.VehicleType
	err := dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Order("name ASC").
		Find(&vehicleTypes).Error
	return vehicleTypes, err
}

func (r *vehicleTypeRepository) Update(ctx context.Context, vehicleType *entity.VehicleType) error {
	return dbFromContext(ctx, r.db).Save(vehicleType).Error
}

func (r *vehicleTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Delete(&entity.VehicleType{}, "id = ?", id).Error
}
