package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory store ───────────────────────────────────────────────────────────
// One memStore backs all stub repositories so a test can observe cross-entity
// effects (order rows, stock levels, movements) after a single service call.

type memStore struct {
	mu             sync.Mutex
	items          map[uuid.UUID]*model.Item
	saleOrders     map[uuid.UUID]*model.SaleOrder
	purchaseOrders map[uuid.UUID]*model.PurchaseOrder
	shipments      map[uuid.UUID]*model.Shipment
	movements      []model.StockMovement
	customers      map[uuid.UUID]*model.Customer
	vendors        map[uuid.UUID]*model.Vendor
}

func newMemStore() *memStore {
	return &memStore{
		items:          make(map[uuid.UUID]*model.Item),
		saleOrders:     make(map[uuid.UUID]*model.SaleOrder),
		purchaseOrders: make(map[uuid.UUID]*model.PurchaseOrder),
		shipments:      make(map[uuid.UUID]*model.Shipment),
		customers:      make(map[uuid.UUID]*model.Customer),
		vendors:        make(map[uuid.UUID]*model.Vendor),
	}
}

func (s *memStore) addItem(i model.Item) *model.Item {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	s.items[i.ID] = &i
	return &i
}

func (s *memStore) addCustomer(c model.Customer) *model.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.customers[c.ID] = &c
	return &c
}

// snapshot deep-copies the mutable state so a failed transaction can restore it.
type storeSnapshot struct {
	items          map[uuid.UUID]model.Item
	saleOrders     map[uuid.UUID]*model.SaleOrder
	purchaseOrders map[uuid.UUID]*model.PurchaseOrder
	movements      []model.StockMovement
}

func (s *memStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		items:          make(map[uuid.UUID]model.Item, len(s.items)),
		saleOrders:     make(map[uuid.UUID]*model.SaleOrder, len(s.saleOrders)),
		purchaseOrders: make(map[uuid.UUID]*model.PurchaseOrder, len(s.purchaseOrders)),
		movements:      append([]model.StockMovement(nil), s.movements...),
	}
	for id, i := range s.items {
		snap.items[id] = *i
	}
	for id, o := range s.saleOrders {
		snap.saleOrders[id] = o
	}
	for id, o := range s.purchaseOrders {
		snap.purchaseOrders[id] = o
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.items = make(map[uuid.UUID]*model.Item, len(snap.items))
	for id, i := range snap.items {
		clone := i
		s.items[id] = &clone
	}
	s.saleOrders = snap.saleOrders
	s.purchaseOrders = snap.purchaseOrders
	s.movements = snap.movements
}

// ── Fake transaction manager ──────────────────────────────────────────────────
// Emulates the all-or-nothing property: state is snapshotted before fn runs
// and restored when fn errors. Transactions are serialized with a mutex, the
// way the row lock on the conditional stock update serializes them in
// Postgres.

type fakeTxManager struct {
	store *memStore
	txMu  sync.Mutex
}

func (t *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	t.store.mu.Lock()
	snap := t.store.snapshot()
	t.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.store.mu.Lock()
		t.store.restore(snap)
		t.store.mu.Unlock()
		return err
	}
	return nil
}

var _ repository.TxManager = (*fakeTxManager)(nil)

// ── Item repository stub ──────────────────────────────────────────────────────

type stubItemRepo struct{ store *memStore }

func (r *stubItemRepo) Create(_ context.Context, i *model.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	clone := *i
	r.store.items[i.ID] = &clone
	return nil
}

func (r *stubItemRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i, ok := r.store.items[id]
	if !ok || i.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *stubItemRepo) List(_ context.Context, userID uuid.UUID, _ dto.ItemFilter) ([]model.Item, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var items []model.Item
	for _, i := range r.store.items {
		if i.UserID == userID {
			items = append(items, *i)
		}
	}
	return items, int64(len(items)), nil
}

// Update mirrors the repository's column-scoped write: quantity belongs to
// the stock ledger and is never written through this path.
func (r *stubItemRepo) Update(_ context.Context, i *model.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *i
	if existing, ok := r.store.items[i.ID]; ok {
		clone.Quantity = existing.Quantity
	}
	r.store.items[i.ID] = &clone
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, _, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.items, id)
	return nil
}

func (r *stubItemRepo) ListLowStock(_ context.Context, userID uuid.UUID) ([]model.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var items []model.Item
	for _, i := range r.store.items {
		if i.UserID == userID && i.Quantity <= i.ReorderPoint {
			items = append(items, *i)
		}
	}
	return items, nil
}

func (r *stubItemRepo) AssignCategory(_ context.Context, userID uuid.UUID, itemIDs []uuid.UUID, categoryID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range itemIDs {
		if i, ok := r.store.items[id]; ok && i.UserID == userID {
			cid := categoryID
			i.CategoryID = &cid
		}
	}
	return nil
}

func (r *stubItemRepo) ClearCategory(_ context.Context, userID, categoryID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, i := range r.store.items {
		if i.UserID == userID && i.CategoryID != nil && *i.CategoryID == categoryID {
			i.CategoryID = nil
		}
	}
	return nil
}

func (r *stubItemRepo) ReserveStock(_ context.Context, userID, id uuid.UUID, qty int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i, ok := r.store.items[id]
	if !ok || i.UserID != userID || i.Quantity < qty {
		return false, nil
	}
	i.Quantity -= qty
	return true, nil
}

func (r *stubItemRepo) ReleaseStock(_ context.Context, userID, id uuid.UUID, qty int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i, ok := r.store.items[id]
	if !ok || i.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	i.Quantity += qty
	return nil
}

var _ repository.ItemRepository = (*stubItemRepo)(nil)

// ── Stock movement repository stub ────────────────────────────────────────────

type stubMovementRepo struct{ store *memStore }

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.store.movements = append(r.store.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByItem(_ context.Context, userID, itemID uuid.UUID) ([]model.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.StockMovement
	for _, m := range r.store.movements {
		if m.UserID == userID && m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Sale order repository stub ────────────────────────────────────────────────

type stubSaleOrderRepo struct {
	store  *memStore
	failOn error // forced Create error, for rollback tests
}

// stubCreatedAt is deliberately non-UTC so response timestamps that forget
// to normalize the zone are caught by the tests.
var stubCreatedAt = time.Date(2026, 3, 1, 10, 30, 0, 0, time.FixedZone("IST", 19800))

func (r *stubSaleOrderRepo) Create(_ context.Context, o *model.SaleOrder) error {
	if r.failOn != nil {
		return r.failOn
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = stubCreatedAt
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].SaleOrderID = o.ID
	}
	clone := *o
	r.store.saleOrders[o.ID] = &clone
	return nil
}

func (r *stubSaleOrderRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.SaleOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.saleOrders[id]
	if !ok || o.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubSaleOrderRepo) List(_ context.Context, userID uuid.UUID) ([]model.SaleOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.SaleOrder
	for _, o := range r.store.saleOrders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubSaleOrderRepo) UpdatePaymentReceived(_ context.Context, userID, id uuid.UUID, received bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.saleOrders[id]
	if !ok || o.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	o.PaymentReceived = received
	return nil
}

func (r *stubSaleOrderRepo) UpdateInvoicePath(_ context.Context, userID, id uuid.UUID, path string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.saleOrders[id]
	if !ok || o.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	p := path
	o.InvoicePath = &p
	return nil
}

var _ repository.SaleOrderRepository = (*stubSaleOrderRepo)(nil)

// ── Purchase order repository stub ────────────────────────────────────────────

type stubPurchaseOrderRepo struct{ store *memStore }

func (r *stubPurchaseOrderRepo) Create(_ context.Context, o *model.PurchaseOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].PurchaseOrderID = o.ID
	}
	clone := *o
	r.store.purchaseOrders[o.ID] = &clone
	return nil
}

func (r *stubPurchaseOrderRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.PurchaseOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.purchaseOrders[id]
	if !ok || o.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubPurchaseOrderRepo) List(_ context.Context, userID uuid.UUID) ([]model.PurchaseOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.PurchaseOrder
	for _, o := range r.store.purchaseOrders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubPurchaseOrderRepo) UpdatePaymentStatus(_ context.Context, userID, id uuid.UUID, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.purchaseOrders[id]
	if !ok || o.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	o.PaymentStatus = status
	return nil
}

var _ repository.PurchaseOrderRepository = (*stubPurchaseOrderRepo)(nil)

// ── Shipment repository stub ──────────────────────────────────────────────────

type stubShipmentRepo struct {
	store *memStore
	// duplicateNext forces the next N Creates to fail with ErrDuplicatedKey,
	// simulating tracking id collisions.
	duplicateNext int
	createErr     error
}

func (r *stubShipmentRepo) Create(_ context.Context, s *model.Shipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if r.duplicateNext > 0 {
		r.duplicateNext--
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range r.store.shipments {
		if existing.TrackingID == s.TrackingID {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	clone := *s
	r.store.shipments[s.ID] = &clone
	return nil
}

func (r *stubShipmentRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.shipments[id]
	if !ok || s.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubShipmentRepo) List(_ context.Context, userID uuid.UUID) ([]model.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.Shipment
	for _, s := range r.store.shipments {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubShipmentRepo) UpdateStatus(_ context.Context, userID, id uuid.UUID, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.shipments[id]
	if !ok || s.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

var _ repository.ShipmentRepository = (*stubShipmentRepo)(nil)

// ── Customer repository stub ──────────────────────────────────────────────────

type stubCustomerRepo struct{ store *memStore }

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clone := *c
	r.store.customers[c.ID] = &clone
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok || c.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) List(_ context.Context, userID uuid.UUID) ([]model.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.Customer
	for _, c := range r.store.customers {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *c
	r.store.customers[c.ID] = &clone
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── Vendor repository stub ────────────────────────────────────────────────────

type stubVendorRepo struct{ store *memStore }

func (r *stubVendorRepo) Create(_ context.Context, v *model.Vendor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	clone := *v
	r.store.vendors[v.ID] = &clone
	return nil
}

func (r *stubVendorRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Vendor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, ok := r.store.vendors[id]
	if !ok || v.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVendorRepo) List(_ context.Context, userID uuid.UUID) ([]model.Vendor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.Vendor
	for _, v := range r.store.vendors {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

var _ repository.VendorRepository = (*stubVendorRepo)(nil)

// ── Category repository stub ──────────────────────────────────────────────────

type stubCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) List(_ context.Context, userID uuid.UUID) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, _, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── Company repository stub ───────────────────────────────────────────────────

type stubCompanyRepo struct {
	company *model.Company
}

func (r *stubCompanyRepo) FindByUser(_ context.Context, userID uuid.UUID) (*model.Company, error) {
	if r.company == nil || r.company.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *r.company
	return &clone, nil
}

func (r *stubCompanyRepo) Upsert(_ context.Context, c *model.Company) error {
	clone := *c
	r.company = &clone
	return nil
}

var _ repository.CompanyRepository = (*stubCompanyRepo)(nil)

// ── User repository stub ──────────────────────────────────────────────────────

type stubUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Invoice generator / dispatcher stubs ──────────────────────────────────────

type stubInvoiceGen struct {
	err       error
	generated int
}

func (g *stubInvoiceGen) Generate(order *model.SaleOrder, _ *model.Company) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.generated++
	return "invoice_" + order.ID.String() + ".pdf", nil
}

type stubDispatcher struct {
	mu       sync.Mutex
	payloads []map[string]interface{}
	err      error
}

func (d *stubDispatcher) EnqueueInvoiceEmail(_ context.Context, payload map[string]interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.payloads = append(d.payloads, payload)
	return nil
}

var errBoom = errors.New("boom")
