package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/internal/domain/event"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	infraRepo "github.com/washpoint/washpoint-api/internal/infrastructure/repository"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// In-memory repository fakes. They keep entities in maps guarded by a mutex and
// assign IDs and creation timestamps the way the database hooks would, which is
// enough to exercise the services' logic without a live connection.

// fakeTxManager serializes top-level transactions with a mutex, standing in for
// the row-level locks the real implementation takes, and joins an ambient
// transaction the way the real one does.
type fakeTxManager struct {
	mu sync.Mutex
}

type fakeTxKey struct{}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(context.WithValue(ctx, fakeTxKey{}, struct{}{}))
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *capturingPublisher) Publish(ctx context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *capturingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Name()
	}
	return out
}

func testContext(tenantID uuid.UUID) context.Context {
	return infraRepo.WithTenant(context.Background(), tenantID)
}

// monotonic clock for CreatedAt stamps so creation order is deterministic
var fakeClock = struct {
	mu  sync.Mutex
	now time.Time
}{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

func nextTimestamp() time.Time {
	fakeClock.mu.Lock()
	defer fakeClock.mu.Unlock()
	fakeClock.now = fakeClock.now.Add(time.Millisecond)
	return fakeClock.now
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = nextTimestamp()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

type fakeOrderItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.OrderItem
}

func newFakeOrderItemRepo() *fakeOrderItemRepo {
	return &fakeOrderItemRepo{items: make(map[uuid.UUID]*entity.OrderItem)}
}

func (r *fakeOrderItemRepo) Create(ctx context.Context, item *entity.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = nextTimestamp()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeOrderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.OrderItem
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderItemRepo) GetByOrderAndService(ctx context.Context, orderID, serviceID uuid.UUID) (*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.OrderID == orderID && it.ServiceID == serviceID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeAdjustmentRepo struct {
	mu          sync.Mutex
	adjustments map[uuid.UUID]*entity.Adjustment
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{adjustments: make(map[uuid.UUID]*entity.Adjustment)}
}

func (r *fakeAdjustmentRepo) Create(ctx context.Context, a *entity.Adjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = nextTimestamp()
	cp := *a
	r.adjustments[a.ID] = &cp
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.adjustments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdjustmentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Adjustment
	for _, a := range r.adjustments {
		if a.OrderID == orderID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeAdjustmentRepo) ExistsForPromotion(ctx context.Context, orderID, promotionID uuid.UUID, itemID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.adjustments {
		if a.OrderID != orderID || a.PromotionID == nil || *a.PromotionID != promotionID {
			continue
		}
		if itemID == nil && a.OrderItemID == nil {
			return true, nil
		}
		if itemID != nil && a.OrderItemID != nil && *a.OrderItemID == *itemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAdjustmentRepo) ExistsBySource(ctx context.Context, orderID uuid.UUID, source enum.AdjustmentSource) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.adjustments {
		if a.OrderID == orderID && a.Scope == enum.AdjustmentScopeOrder && a.Source == source {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAdjustmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.adjustments, id)
	return nil
}

func (r *fakeAdjustmentRepo) DeleteByOrderItemID(ctx context.Context, itemID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.adjustments {
		if a.OrderItemID != nil && *a.OrderItemID == itemID {
			delete(r.adjustments, id)
		}
	}
	return nil
}

type fakePromotionRepo struct {
	mu         sync.Mutex
	promotions map[uuid.UUID]*entity.Promotion
}

func newFakePromotionRepo() *fakePromotionRepo {
	return &fakePromotionRepo{promotions: make(map[uuid.UUID]*entity.Promotion)}
}

func (r *fakePromotionRepo) Create(ctx context.Context, p *entity.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = nextTimestamp()
	cp := *p
	r.promotions[p.ID] = &cp
	return nil
}

func (r *fakePromotionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promotions[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePromotionRepo) Update(ctx context.Context, p *entity.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.promotions[p.ID] = &cp
	return nil
}

func (r *fakePromotionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.promotions, id)
	return nil
}

func (r *fakePromotionRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Promotion, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Promotion
	for _, p := range r.promotions {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePromotionRepo) FindByMethodCode(ctx context.Context, branchID uuid.UUID, methodCode string, date time.Time) ([]entity.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Promotion
	for _, p := range r.promotions {
		if !p.Active || p.MethodCode == nil || *p.MethodCode != methodCode {
			continue
		}
		if !p.VigentOn(date) || !p.MatchesBranch(branchID) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out, nil
}

type fakePriceRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.PriceEntry
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{entries: make(map[uuid.UUID]*entity.PriceEntry)}
}

func (r *fakePriceRepo) Create(ctx context.Context, e *entity.PriceEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = nextTimestamp()
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakePriceRepo) Update(ctx context.Context, e *entity.PriceEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakePriceRepo) matches(e *entity.PriceEntry, combo repository.PriceCombination) bool {
	return e.BranchID == combo.BranchID && e.ServiceID == combo.ServiceID && e.VehicleTypeID == combo.VehicleTypeID
}

func (r *fakePriceRepo) FindCovering(ctx context.Context, combo repository.PriceCombination, date time.Time) ([]entity.PriceEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PriceEntry
	for _, e := range r.entries {
		if e.Active && r.matches(e, combo) && e.Covers(date) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out, nil
}

func (r *fakePriceRepo) GetActiveForUpdate(ctx context.Context, combo repository.PriceCombination) ([]entity.PriceEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PriceEntry
	for _, e := range r.entries {
		if e.Active && r.matches(e, combo) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *fakePriceRepo) List(ctx context.Context, combo *repository.PriceCombination, params *pagination.PaginationParams) ([]entity.PriceEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PriceEntry
	for _, e := range r.entries {
		if combo == nil || r.matches(e, *combo) {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*entity.Payment
	orders   *fakeOrderRepo // for branch lookup in aggregation
}

func newFakePaymentRepo(orders *fakeOrderRepo) *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment), orders: orders}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = nextTimestamp()
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByOrderAndKey(ctx context.Context, orderID uuid.UUID, key string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.OrderID == orderID && p.IdempotencyKey != nil && *p.IdempotencyKey == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePaymentRepo) SumNonTip(ctx context.Context, orderID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, p := range r.payments {
		if p.OrderID == orderID && !p.IsTip {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) AggregateForBranchWindow(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]repository.MethodTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byMethod := make(map[uuid.UUID]*repository.MethodTotals)
	var methodOrder []uuid.UUID
	for _, p := range r.payments {
		order, _ := r.orders.GetByID(ctx, p.OrderID)
		if order == nil || order.BranchID != branchID {
			continue
		}
		if p.PaidAt.Before(from) || !p.PaidAt.Before(to) {
			continue
		}
		mt, ok := byMethod[p.PaymentMethodID]
		if !ok {
			mt = &repository.MethodTotals{PaymentMethodID: p.PaymentMethodID}
			byMethod[p.PaymentMethodID] = mt
			methodOrder = append(methodOrder, p.PaymentMethodID)
		}
		if p.IsTip {
			mt.Tips += p.Amount
		} else {
			mt.Total += p.Amount
		}
	}
	out := make([]repository.MethodTotals, 0, len(byMethod))
	for _, id := range methodOrder {
		out = append(out, *byMethod[id])
	}
	return out, nil
}

type fakePaymentMethodRepo struct {
	mu      sync.Mutex
	methods map[uuid.UUID]*entity.PaymentMethod
}

func newFakePaymentMethodRepo() *fakePaymentMethodRepo {
	return &fakePaymentMethodRepo{methods: make(map[uuid.UUID]*entity.PaymentMethod)}
}

func (r *fakePaymentMethodRepo) Create(ctx context.Context, m *entity.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cp := *m
	r.methods[m.ID] = &cp
	return nil
}

func (r *fakePaymentMethodRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.methods[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakePaymentMethodRepo) GetByCode(ctx context.Context, code string) (*entity.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.methods {
		if m.Code == code {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentMethodRepo) List(ctx context.Context) ([]entity.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PaymentMethod
	for _, m := range r.methods {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakePaymentMethodRepo) Update(ctx context.Context, m *entity.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.methods[m.ID] = &cp
	return nil
}

type fakeBranchRepo struct {
	mu       sync.Mutex
	branches map[uuid.UUID]*entity.Branch
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{branches: make(map[uuid.UUID]*entity.Branch)}
}

func (r *fakeBranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	cp := *b
	r.branches[b.ID] = &cp
	return nil
}

func (r *fakeBranchRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.branches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBranchRepo) List(ctx context.Context) ([]entity.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Branch
	for _, b := range r.branches {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.branches[b.ID] = &cp
	return nil
}

func (r *fakeBranchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.branches, id)
	return nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]*entity.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[uuid.UUID]*entity.Vehicle)}
}

func (r *fakeVehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Vehicle
	for _, v := range r.vehicles {
		if v.CustomerID == customerID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vehicles, id)
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
}

func (r *fakeServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.Service, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Service
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.services, id)
	return nil
}

type fakeVehicleTypeRepo struct {
	mu    sync.Mutex
	types map[uuid.UUID]*entity.VehicleType
}

func newFakeVehicleTypeRepo() *fakeVehicleTypeRepo {
	return &fakeVehicleTypeRepo{types: make(map[uuid.UUID]*entity.VehicleType)}
}

func (r *fakeVehicleTypeRepo) Create(ctx context.Context, vt *entity.VehicleType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vt.ID == uuid.Nil {
		vt.ID = uuid.New()
	}
	cp := *vt
	r.types[vt.ID] = &cp
	return nil
}

func (r *fakeVehicleTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.VehicleType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vt, ok := r.types[id]
	if !ok {
		return nil, nil
	}
	cp := *vt
	return &cp, nil
}

func (r *fakeVehicleTypeRepo) List(ctx context.Context) ([]entity.VehicleType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.VehicleType
	for _, vt := range r.types {
		out = append(out, *vt)
	}
	return out, nil
}

func (r *fakeVehicleTypeRepo) Update(ctx context.Context, vt *entity.VehicleType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *vt
	r.types[vt.ID] = &cp
	return nil
}

func (r *fakeVehicleTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.types, id)
	return nil
}

type fakeCashSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.CashSession
	counts   []entity.CashSessionCount
}

func newFakeCashSessionRepo() *fakeCashSessionRepo {
	return &fakeCashSessionRepo{sessions: make(map[uuid.UUID]*entity.CashSession)}
}

func (r *fakeCashSessionRepo) Create(ctx context.Context, s *entity.CashSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeCashSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeCashSessionRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeCashSessionRepo) GetOpenByBranch(ctx context.Context, branchID uuid.UUID) (*entity.CashSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.BranchID == branchID && s.ClosedAt == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCashSessionRepo) Update(ctx context.Context, s *entity.CashSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeCashSessionRepo) CreateCounts(ctx context.Context, counts []entity.CashSessionCount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, counts...)
	return nil
}

func (r *fakeCashSessionRepo) List(ctx context.Context, branchID *uuid.UUID, params *pagination.PaginationParams) ([]entity.CashSession, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.CashSession
	for _, s := range r.sessions {
		if branchID == nil || s.BranchID == *branchID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

type sequenceKey struct {
	branchID uuid.UUID
	docType  enum.DocumentType
	pos      int
}

type fakeSequenceRepo struct {
	mu       sync.Mutex
	counters map[sequenceKey]*entity.SequenceCounter
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: make(map[sequenceKey]*entity.SequenceCounter)}
}

func (r *fakeSequenceRepo) GetForUpdate(ctx context.Context, branchID uuid.UUID, docType enum.DocumentType, pos int) (*entity.SequenceCounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.counters[sequenceKey{branchID, docType, pos}]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeSequenceRepo) Create(ctx context.Context, c *entity.SequenceCounter) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sequenceKey{c.BranchID, c.DocumentType, c.PointOfSale}
	if _, exists := r.counters[key]; exists {
		return false, nil
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.counters[key] = &cp
	return true, nil
}

func (r *fakeSequenceRepo) Update(ctx context.Context, c *entity.SequenceCounter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.counters[sequenceKey{c.BranchID, c.DocumentType, c.PointOfSale}] = &cp
	return nil
}

type fakeDocumentRepo struct {
	mu        sync.Mutex
	documents map[uuid.UUID]*entity.Document
	lines     []entity.DocumentLine
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: make(map[uuid.UUID]*entity.Document)}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	r.documents[d.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) CreateLines(ctx context.Context, lines []entity.DocumentLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, lines...)
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.documents[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocumentRepo) GetByOrderAndType(ctx context.Context, orderID uuid.UUID, docType string) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.documents {
		if d.OrderID == orderID && string(d.DocumentType) == docType {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}
