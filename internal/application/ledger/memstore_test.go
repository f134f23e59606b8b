package ledger_test

// Fakes en memoria para los puertos del ledger: repositorios sobre mapas y un
// TxRunner con semántica commit-o-descarta (snapshot del estado, rollback si
// fn retorna error). El mutex del store emula la serialización del lock de
// fila: la transacción completa corre bajo el lock, igual que dos SELECT FOR
// UPDATE sobre el mismo producto serializan en PostgreSQL.

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jdcampos/inventario-ledger/internal/domain"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

type memStore struct {
	mu sync.Mutex

	products  map[string]entity.Product
	movements map[string]entity.Movement
	alerts    map[string]entity.Alert
	sales     map[string]entity.Sale
	purchases map[string]entity.Purchase
	customers map[string]entity.Customer
	suppliers map[string]entity.Supplier
	users     map[string]entity.User

	// failMovementFor fuerza un error al persistir el movimiento de ese
	// producto, para probar el rollback todo-o-nada.
	failMovementFor string
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]entity.Product),
		movements: make(map[string]entity.Movement),
		alerts:    make(map[string]entity.Alert),
		sales:     make(map[string]entity.Sale),
		purchases: make(map[string]entity.Purchase),
		customers: make(map[string]entity.Customer),
		suppliers: make(map[string]entity.Supplier),
		users:     make(map[string]entity.User),
	}
}

type memSnapshot struct {
	products  map[string]entity.Product
	movements map[string]entity.Movement
	alerts    map[string]entity.Alert
	sales     map[string]entity.Sale
	purchases map[string]entity.Purchase
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *memStore) snapshot() memSnapshot {
	return memSnapshot{
		products:  copyMap(s.products),
		movements: copyMap(s.movements),
		alerts:    copyMap(s.alerts),
		sales:     copyMap(s.sales),
		purchases: copyMap(s.purchases),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.alerts = snap.alerts
	s.sales = snap.sales
	s.purchases = snap.purchases
}

// Helpers de siembra para tests.

func (s *memStore) addProduct(id, name, supplierID string, price decimal.Decimal, stock, minStock int) {
	s.products[id] = entity.Product{
		ID: id, Name: name, SupplierID: supplierID,
		Price: price, CurrentStock: stock, MinimumStock: minStock,
	}
}

func (s *memStore) addUser(id string) {
	s.users[id] = entity.User{ID: id, Name: "Usuario " + id}
}

func (s *memStore) addCustomer(id string) {
	s.customers[id] = entity.Customer{ID: id, Name: "Cliente " + id}
}

func (s *memStore) addSupplier(id, name string) {
	s.suppliers[id] = entity.Supplier{ID: id, Name: name}
}

func (s *memStore) stockOf(id string) int {
	return s.products[id].CurrentStock
}

func (s *memStore) activeAlertsOf(productID string) []entity.Alert {
	var out []entity.Alert
	for _, a := range s.alerts {
		if a.ProductID == productID && a.DeletedAt == nil {
			out = append(out, a)
		}
	}
	return out
}

// memTxRunner implementa ledger.TxRunner sobre el store.

type memTxRunner struct {
	s *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	repository.MovementRepository,
	repository.ProductRepository,
	repository.AlertRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(&memMovementRepo{r.s}, &memProductRepo{r.s}, &memAlertRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *memTxRunner) RunTransaction(_ context.Context, fn func(
	repository.MovementRepository,
	repository.ProductRepository,
	repository.AlertRepository,
	repository.SaleRepository,
	repository.PurchaseRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	err := fn(&memMovementRepo{r.s}, &memProductRepo{r.s}, &memAlertRepo{r.s},
		&memSaleRepo{r.s}, &memPurchaseRepo{r.s})
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// Repositorios. Los getters devuelven copias para que las mutaciones del caso
// de uso no se filtren al store sin pasar por Update/Create.

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) UpdateStock(productID string, stock int) error {
	p, ok := r.s.products[productID]
	if !ok || p.DeletedAt != nil {
		return domain.ErrNotFound
	}
	p.CurrentStock = stock
	r.s.products[productID] = p
	return nil
}

func (r *memProductRepo) ListBelowMinimum(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.DeletedAt == nil && p.CurrentStock <= p.MinimumStock {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	if r.s.failMovementFor != "" && m.ProductID == r.s.failMovementFor {
		return fmt.Errorf("fallo inyectado al persistir movimiento de %s", m.ProductID)
	}
	if _, ok := r.s.movements[m.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.movements[m.ID] = *m
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok || m.DeletedAt != nil {
		return nil, nil
	}
	cp := m
	return &cp, nil
}

func (r *memMovementRepo) GetForUpdate(id string) (*entity.Movement, error) {
	return r.GetByID(id)
}

func (r *memMovementRepo) SetCorrectedBy(movementID, correctionID string) error {
	m, ok := r.s.movements[movementID]
	if !ok || m.DeletedAt != nil {
		return domain.ErrNotFound
	}
	if m.CorrectedBy != nil {
		return domain.ErrConflict
	}
	m.CorrectedBy = &correctionID
	r.s.movements[movementID] = m
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductID == productID && m.DeletedAt == nil {
			cp := m
			out = append(out, &cp)
		}
	}
	// Más recientes primero, como el adaptador real.
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r *memMovementRepo) ListBySale(saleID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.SaleID != nil && *m.SaleID == saleID && m.DeletedAt == nil {
			cp := m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *memMovementRepo) ListByPurchase(purchaseID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.PurchaseID != nil && *m.PurchaseID == purchaseID && m.DeletedAt == nil {
			cp := m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

type memAlertRepo struct{ s *memStore }

func (r *memAlertRepo) Create(a *entity.Alert) error {
	if _, ok := r.s.alerts[a.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.alerts[a.ID] = *a
	return nil
}

func (r *memAlertRepo) ActiveByProduct(productID string) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.s.alerts {
		if a.ProductID == productID && a.DeletedAt == nil {
			cp := a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memAlertRepo) Retire(id string) error {
	a, ok := r.s.alerts[id]
	if !ok || a.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	a.DeletedAt = &now
	r.s.alerts[id] = a
	return nil
}

func (r *memAlertRepo) ListActive(limit, offset int) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.s.alerts {
		if a.DeletedAt == nil {
			cp := a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.s.sales[id]
	if !ok || s.DeletedAt != nil {
		return nil, nil
	}
	cp := s
	return &cp, nil
}

func (r *memSaleRepo) AddToTotal(saleID string, delta decimal.Decimal) error {
	s, ok := r.s.sales[saleID]
	if !ok || s.DeletedAt != nil {
		return domain.ErrNotFound
	}
	s.Total = s.Total.Add(delta)
	r.s.sales[saleID] = s
	return nil
}

type memPurchaseRepo struct{ s *memStore }

func (r *memPurchaseRepo) Create(p *entity.Purchase) error {
	if _, ok := r.s.purchases[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.purchases[p.ID] = *p
	return nil
}

func (r *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.s.purchases[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *memPurchaseRepo) AddToTotal(purchaseID string, delta decimal.Decimal) error {
	p, ok := r.s.purchases[purchaseID]
	if !ok || p.DeletedAt != nil {
		return domain.ErrNotFound
	}
	p.Total = p.Total.Add(delta)
	r.s.purchases[purchaseID] = p
	return nil
}

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.DeletedAt == nil {
			cp := c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(sup *entity.Supplier) error {
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok || sup.DeletedAt != nil {
		return nil, nil
	}
	cp := sup
	return &cp, nil
}

func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sup := range r.s.suppliers {
		if sup.DeletedAt == nil {
			cp := sup
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(u *entity.User) error {
	r.s.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// fakeClock devuelve siempre la misma hora.
type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

// captureAudit acumula los eventos emitidos; failErr simula un emisor caído.
type captureAudit struct {
	mu      sync.Mutex
	events  []entity.AuditEvent
	failErr error
}

func (a *captureAudit) Emit(_ context.Context, event entity.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failErr != nil {
		return a.failErr
	}
	a.events = append(a.events, event)
	return nil
}

func (a *captureAudit) all() []entity.AuditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]entity.AuditEvent(nil), a.events...)
}
