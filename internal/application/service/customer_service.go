package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	infraRepo "github.com/washpoint/washpoint-api/internal/infrastructure/repository"
	"github.com/washpoint/washpoint-api/pkg/apperror"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// CustomerService handles customer and vehicle operations
type CustomerService struct {
	customerRepo    repository.CustomerRepository
	vehicleRepo     repository.VehicleRepository
	vehicleTypeRepo repository.VehicleTypeRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	vehicleTypeRepo repository.VehicleTypeRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		vehicleRepo:     vehicleRepo,
		vehicleTypeRepo: vehicleTypeRepo,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Email   *string
	Phone   *string
	TaxID   *string
	Address *string
	Notes   *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	customer := &entity.Customer{
		TenantID: tenantID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		TaxID:    input.TaxID,
		Address:  input.Address,
		Notes:    input.Notes,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with optional name/phone/plate search
func (s *CustomerService) ListCustomers(ctx context.Context, search string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, search, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	TaxID   *string
	Address *string
	Notes   *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.TaxID != nil {
		customer.TaxID = input.TaxID
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// AddVehicleInput represents the add vehicle input
type AddVehicleInput struct {
	CustomerID    uuid.UUID
	VehicleTypeID uuid.UUID
	Plate         string
	Make          *string
	Model         *string
	Color         *string
}

// AddVehicle registers a vehicle under a customer
func (s *CustomerService) AddVehicle(ctx context.Context, input *AddVehicleInput) (*entity.Vehicle, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	vehicleType, err := s.vehicleTypeRepo.GetByID(ctx, input.VehicleTypeID)
	if err != nil {
		return nil, err
	}
	if vehicleType == nil {
		return nil, apperror.NewNotFoundError("Vehicle type")
	}

	vehicle := &entity.Vehicle{
		TenantID:      tenantID,
		CustomerID:    input.CustomerID,
		VehicleTypeID: input.VehicleTypeID,
		Plate:         input.Plate,
		Make:          input.Make,
		Model:         input.Model,
		Color:         input.Color,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles returns a customer's vehicles
func (s *CustomerService) ListVehicles(ctx context.Context, customerID uuid.UUID) ([]entity.Vehicle, error) {
	return s.vehicleRepo.GetByCustomerID(ctx, customerID)
}

// DeleteVehicle removes a vehicle from a customer
func (s *CustomerService) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return apperror.NewNotFoundError("Vehicle")
	}
	return s.vehicleRepo.Delete(ctx, id)
}
