package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	infraRepo "github.com/washpoint/washpoint-api/internal/infrastructure/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
	"github.com/washpoint/washpoint-api/pkg/pagination"
	"github.com/washpoint/washpoint-api/pkg/utils"
)

// CatalogService handles the service catalog, vehicle types and payment methods
type CatalogService struct {
	serviceRepo     repository.ServiceRepository
	vehicleTypeRepo repository.VehicleTypeRepository
	methodRepo      repository.PaymentMethodRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	serviceRepo repository.ServiceRepository,
	vehicleTypeRepo repository.VehicleTypeRepository,
	methodRepo repository.PaymentMethodRepository,
) *CatalogService {
	return &CatalogService{
		serviceRepo:     serviceRepo,
		vehicleTypeRepo: vehicleTypeRepo,
		methodRepo:      methodRepo,
	}
}

// CreateServiceInput represents the create service input
type CreateServiceInput struct {
	Name        string
	Code        string
	Description *string
}

// CreateService adds an entry to the service catalog
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	code := input.Code
	if code == "" {
		code = utils.Slugify(input.Name)
	}

	service := &entity.Service{
		TenantID:    tenantID,
		Name:        input.Name,
		Code:        code,
		Description: input.Description,
		Active:      true,
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// GetService retrieves a catalog entry by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return service, nil
}

// ListServices lists catalog entries with optional name search
func (s *CatalogService) ListServices(ctx context.Context, search string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Service], error) {
	services, total, err := s.serviceRepo.List(ctx, search, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// UpdateServiceInput represents the update service input
type UpdateServiceInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Active      *bool
}

// UpdateService updates a catalog entry
func (s *CatalogService) UpdateService(ctx context.Context, input *UpdateServiceInput) (*entity.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = input.Description
	}
	if input.Active != nil {
		service.Active = *input.Active
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteService soft-deletes a catalog entry. Existing order lines keep their
// snapshotted name and price.
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if service == nil {
		return apperror.NewNotFoundError("Service")
	}
	return s.serviceRepo.Delete(ctx, id)
}

// CreateVehicleType adds a vehicle type used as a pricing classifier
func (s *CatalogService) CreateVehicleType(ctx context.Context, name string) (*entity.VehicleType, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	vehicleType := &entity.VehicleType{
		TenantID: tenantID,
		Name:     name,
		Active:   true,
	}
	if err := s.vehicleTypeRepo.Create(ctx, vehicleType); err != nil {
		return nil, err
	}
	return vehicleType, nil
}

// ListVehicleTypes lists the tenant's vehicle types
func (s *CatalogService) ListVehicleTypes(ctx context.Context) ([]entity.VehicleType, error) {
	return s.vehicleTypeRepo.List(ctx)
}

// CreatePaymentMethodInput represents the create payment method input
type CreatePaymentMethodInput struct {
	Code string
	Name string
}

// CreatePaymentMethod adds a payment method. The code must be unique within the
// tenant because payment-method promotions are gated on it.
func (s *CatalogService) CreatePaymentMethod(ctx context.Context, input *CreatePaymentMethodInput) (*entity.PaymentMethod, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	existing, err := s.methodRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Payment method code already exists")
	}

	method := &entity.PaymentMethod{
		TenantID: tenantID,
		Code:     input.Code,
		Name:     input.Name,
		Active:   true,
	}
	if err := s.methodRepo.Create(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// ListPaymentMethods lists the tenant's payment methods
func (s *CatalogService) ListPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	return s.methodRepo.List(ctx)
}

// SetPaymentMethodActive enables or disables a payment method
func (s *CatalogService) SetPaymentMethodActive(ctx context.Context, id uuid.UUID, active bool) (*entity.PaymentMethod, error) {
	method, err := s.methodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}
	method.Active = active
	if err := s.methodRepo.Update(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}
