package sales_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventario-pymes/pos-api/internal/application/sales"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Base de datos en memoria para los tests del motor de ventas.
//
// memTxRunner implementa sales.TxRunner con semántica de snapshot: antes de
// ejecutar fn clona el estado completo y, si fn retorna error, lo restaura.
// Así los tests verifican la atomicidad real del motor (nada queda a medias)
// sin una base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	stores    map[string]*entity.Store
	stock     map[string]*entity.StockEntry
	sales     map[string]*entity.Sale
	lines     map[string]*entity.SaleLine
	audits    []*entity.AuditLog
}

func newMemDB() *memDB {
	return &memDB{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		stores:    make(map[string]*entity.Store),
		stock:     make(map[string]*entity.StockEntry),
		sales:     make(map[string]*entity.Sale),
		lines:     make(map[string]*entity.SaleLine),
	}
}

func (db *memDB) snapshot() *memDB {
	cp := newMemDB()
	for k, v := range db.products {
		c := *v
		cp.products[k] = &c
	}
	for k, v := range db.customers {
		c := *v
		cp.customers[k] = &c
	}
	for k, v := range db.stores {
		c := *v
		cp.stores[k] = &c
	}
	for k, v := range db.stock {
		c := *v
		cp.stock[k] = &c
	}
	for k, v := range db.sales {
		c := *v
		cp.sales[k] = &c
	}
	for k, v := range db.lines {
		c := *v
		cp.lines[k] = &c
	}
	cp.audits = append(cp.audits, db.audits...)
	return cp
}

func (db *memDB) restore(snap *memDB) {
	db.products = snap.products
	db.customers = snap.customers
	db.stores = snap.stores
	db.stock = snap.stock
	db.sales = snap.sales
	db.lines = snap.lines
	db.audits = snap.audits
}

// stockQty devuelve la cantidad del par, o -1 si no hay entrada.
func (db *memDB) stockQty(productID, storeID string) int64 {
	for _, e := range db.stock {
		if e.ProductID == productID && e.StoreID == storeID {
			return e.Quantity
		}
	}
	return -1
}

func (db *memDB) linesOf(saleID string) []*entity.SaleLine {
	var out []*entity.SaleLine
	for _, l := range db.lines {
		if l.SaleID == saleID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct {
	db *memDB
}

var _ sales.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) RunSale(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
) error) error {
	snap := r.db.snapshot()
	err := fn(
		&memSaleRepo{db: r.db},
		&memStockRepo{db: r.db},
		&memProductRepo{db: r.db},
		&memAuditRepo{db: r.db},
	)
	if err != nil {
		r.db.restore(snap)
	}
	return err
}

// ── Repos ─────────────────────────────────────────────────────────────────────

type memProductRepo struct{ db *memDB }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.db.products, id)
	return nil
}

func (r *memProductRepo) AllPrices() (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(r.db.products))
	for id, p := range r.db.products {
		out[id] = p.Price
	}
	return out, nil
}

type memCustomerRepo struct{ db *memDB }

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.db.customers[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.db.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) List(int, int) ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) Update(c *entity.Customer) error           { return nil }
func (r *memCustomerRepo) Delete(id string) error                    { return nil }

type memStoreRepo struct{ db *memDB }

var _ repository.StoreRepository = (*memStoreRepo)(nil)

func (r *memStoreRepo) Create(s *entity.Store) error {
	cp := *s
	r.db.stores[s.ID] = &cp
	return nil
}

func (r *memStoreRepo) GetByID(id string) (*entity.Store, error) {
	s, ok := r.db.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memStoreRepo) List(int, int) ([]*entity.Store, error) { return nil, nil }
func (r *memStoreRepo) Update(s *entity.Store) error           { return nil }
func (r *memStoreRepo) Delete(id string) error                 { return nil }

type memStockRepo struct{ db *memDB }

var _ repository.StockLedgerRepository = (*memStockRepo)(nil)

func (r *memStockRepo) Get(productID, storeID string) (*entity.StockEntry, error) {
	for _, e := range r.db.stock {
		if e.ProductID == productID && e.StoreID == storeID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memStockRepo) GetForUpdate(productID, storeID string) (*entity.StockEntry, error) {
	return r.Get(productID, storeID)
}

func (r *memStockRepo) GetByID(id string) (*entity.StockEntry, error) {
	e, ok := r.db.stock[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memStockRepo) Create(e *entity.StockEntry) error {
	cp := *e
	r.db.stock[e.ID] = &cp
	return nil
}

func (r *memStockRepo) SetQuantity(id string, quantity int64) error {
	if e, ok := r.db.stock[id]; ok {
		e.Quantity = quantity
		e.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memStockRepo) Delete(id string) error {
	delete(r.db.stock, id)
	return nil
}

func (r *memStockRepo) List(string, int, int) ([]*entity.StockEntry, error) { return nil, nil }

type memSaleRepo struct{ db *memDB }

var _ repository.SaleRepository = (*memSaleRepo)(nil)

func (r *memSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	r.db.sales[s.ID] = &cp
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.db.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return r.ListAll() }

func (r *memSaleRepo) ListAll() ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.db.sales {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memSaleRepo) UpdateHeader(s *entity.Sale) error {
	cp := *s
	r.db.sales[s.ID] = &cp
	return nil
}

func (r *memSaleRepo) UpdateTotal(id string, total decimal.Decimal) error {
	if s, ok := r.db.sales[id]; ok {
		s.Total = total
	}
	return nil
}

func (r *memSaleRepo) Delete(id string) error {
	delete(r.db.sales, id)
	return nil
}

func (r *memSaleRepo) CreateLine(l *entity.SaleLine) error {
	cp := *l
	r.db.lines[l.ID] = &cp
	return nil
}

func (r *memSaleRepo) ListLines(saleID string) ([]*entity.SaleLine, error) {
	return r.db.linesOf(saleID), nil
}

func (r *memSaleRepo) ListAllLines() ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	for _, l := range r.db.lines {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memSaleRepo) DeleteLines(saleID string) error {
	for id, l := range r.db.lines {
		if l.SaleID == saleID {
			delete(r.db.lines, id)
		}
	}
	return nil
}

func (r *memSaleRepo) UpdateLineSubtotal(id string, subtotal decimal.Decimal) error {
	if l, ok := r.db.lines[id]; ok {
		l.Subtotal = subtotal
	}
	return nil
}

type memAuditRepo struct{ db *memDB }

var _ repository.AuditRepository = (*memAuditRepo)(nil)

func (r *memAuditRepo) Create(log *entity.AuditLog) error {
	cp := *log
	r.db.audits = append(r.db.audits, &cp)
	return nil
}

func (r *memAuditRepo) List(int, int) ([]*entity.AuditLog, error) {
	return r.db.audits, nil
}
