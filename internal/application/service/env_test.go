package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
)

// testEnv wires every service against the in-memory fakes with one tenant,
// branch, vehicle type, customer, vehicle, catalog service and payment method
// pre-seeded.
type testEnv struct {
	ctx      context.Context
	tenantID uuid.UUID
	userID   uuid.UUID

	branch      *entity.Branch
	vehicleType *entity.VehicleType
	customer    *entity.Customer
	vehicle     *entity.Vehicle
	svcEntry    *entity.Service
	cashMethod  *entity.PaymentMethod
	cardMethod  *entity.PaymentMethod

	orderRepo    *fakeOrderRepo
	itemRepo     *fakeOrderItemRepo
	adjRepo      *fakeAdjustmentRepo
	promoRepo    *fakePromotionRepo
	priceRepo    *fakePriceRepo
	paymentRepo  *fakePaymentRepo
	methodRepo   *fakePaymentMethodRepo
	branchRepo   *fakeBranchRepo
	vehicleRepo  *fakeVehicleRepo
	typeRepo     *fakeVehicleTypeRepo
	serviceRepo  *fakeServiceRepo
	sessionRepo  *fakeCashSessionRepo
	sequenceRepo *fakeSequenceRepo
	documentRepo *fakeDocumentRepo

	publisher *capturingPublisher

	pricing     *PricingService
	orders      *OrderService
	adjustments *AdjustmentService
	payments    *PaymentService
	sequences   *SequenceService
	sessions    *CashSessionService
	documents   *DocumentService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		tenantID: uuid.New(),
		userID:   uuid.New(),

		orderRepo:    newFakeOrderRepo(),
		itemRepo:     newFakeOrderItemRepo(),
		adjRepo:      newFakeAdjustmentRepo(),
		promoRepo:    newFakePromotionRepo(),
		priceRepo:    newFakePriceRepo(),
		methodRepo:   newFakePaymentMethodRepo(),
		branchRepo:   newFakeBranchRepo(),
		vehicleRepo:  newFakeVehicleRepo(),
		typeRepo:     newFakeVehicleTypeRepo(),
		serviceRepo:  newFakeServiceRepo(),
		sessionRepo:  newFakeCashSessionRepo(),
		sequenceRepo: newFakeSequenceRepo(),
		documentRepo: newFakeDocumentRepo(),

		publisher: &capturingPublisher{},
	}
	env.paymentRepo = newFakePaymentRepo(env.orderRepo)
	env.ctx = testContext(env.tenantID)

	tx := &fakeTxManager{}
	env.pricing = NewPricingService(env.priceRepo, env.branchRepo, env.serviceRepo, env.typeRepo, tx, env.publisher)
	env.orders = NewOrderService(env.orderRepo, env.itemRepo, env.adjRepo, env.paymentRepo, env.branchRepo, env.vehicleRepo, env.pricing, tx, env.publisher)
	env.adjustments = NewAdjustmentService(env.orderRepo, env.itemRepo, env.adjRepo, env.promoRepo, env.paymentRepo, env.methodRepo, tx, env.publisher)
	env.payments = NewPaymentService(env.orderRepo, env.itemRepo, env.adjRepo, env.paymentRepo, env.methodRepo, tx, env.publisher)
	env.sequences = NewSequenceService(env.sequenceRepo, tx)
	env.sessions = NewCashSessionService(env.sessionRepo, env.paymentRepo, env.branchRepo, tx, env.publisher)
	env.documents = NewDocumentService(env.documentRepo, env.orderRepo, env.itemRepo, env.sequences, tx, env.publisher)

	env.branch = &entity.Branch{TenantID: env.tenantID, Name: "Main", Active: true}
	_ = env.branchRepo.Create(env.ctx, env.branch)

	env.vehicleType = &entity.VehicleType{TenantID: env.tenantID, Name: "Sedan", Active: true}
	_ = env.typeRepo.Create(env.ctx, env.vehicleType)

	env.customer = &entity.Customer{TenantID: env.tenantID, Name: "Dana Reyes"}
	// customer repo is not needed by the core services; only the ID matters
	env.customer.ID = uuid.New()

	env.vehicle = &entity.Vehicle{
		TenantID:      env.tenantID,
		CustomerID:    env.customer.ID,
		VehicleTypeID: env.vehicleType.ID,
		Plate:         "ABC-123",
	}
	_ = env.vehicleRepo.Create(env.ctx, env.vehicle)

	env.svcEntry = &entity.Service{TenantID: env.tenantID, Name: "Full Wash", Code: "full-wash", Active: true}
	_ = env.serviceRepo.Create(env.ctx, env.svcEntry)

	env.cashMethod = &entity.PaymentMethod{TenantID: env.tenantID, Code: "cash", Name: "Cash", Active: true}
	_ = env.methodRepo.Create(env.ctx, env.cashMethod)
	env.cardMethod = &entity.PaymentMethod{TenantID: env.tenantID, Code: "card", Name: "Card", Active: true}
	_ = env.methodRepo.Create(env.ctx, env.cardMethod)

	return env
}

// publishPrice seeds an open-ended price entry for the default combination
func (env *testEnv) publishPrice(serviceID uuid.UUID, cents int64, start time.Time) *entity.PriceEntry {
	entry := &entity.PriceEntry{
		TenantID:      env.tenantID,
		BranchID:      env.branch.ID,
		ServiceID:     serviceID,
		VehicleTypeID: env.vehicleType.ID,
		Price:         cents,
		Currency:      "USD",
		Start:         entity.DateOnly(start),
		Active:        true,
	}
	_ = env.priceRepo.Create(env.ctx, entry)
	return entry
}

// newService adds another catalog entry
func (env *testEnv) newService(name string) *entity.Service {
	svc := &entity.Service{TenantID: env.tenantID, Name: name, Code: name, Active: true}
	_ = env.serviceRepo.Create(env.ctx, svc)
	return svc
}

// openOrder creates a draft order for the default customer and vehicle
func (env *testEnv) openOrder() *entity.Order {
	order, err := env.orders.CreateOrder(env.ctx, &CreateOrderInput{
		BranchID:   env.branch.ID,
		CustomerID: &env.customer.ID,
		VehicleID:  &env.vehicle.ID,
	}, env.userID)
	if err != nil {
		panic(err)
	}
	return order
}

func (env *testEnv) defaultCombo(serviceID uuid.UUID) repository.PriceCombination {
	return repository.PriceCombination{
		BranchID:      env.branch.ID,
		ServiceID:     serviceID,
		VehicleTypeID: env.vehicleType.ID,
	}
}
