package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// ServiceRepository defines the interface for service catalog data access
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.Service, int64, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VehicleTypeRepository defines the interface for vehicle type data access
type VehicleTypeRepository interface {
	Create(ctx context.Context, vehicleType *entity.VehicleType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.VehicleType, error)
	List(ctx context.Context) ([]entity.VehicleType, error)
	Update(ctx context.Context, vehicleType *entity.VehicleType) error
	Delete(ctx context.Context, id uuid.UUID) error
}
