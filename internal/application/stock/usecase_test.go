package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/application/stock"
	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
	"github.com/inventario-pymes/pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes para el caso de uso de ajuste
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct{ products map[string]*entity.Product }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func (r *stubProductRepo) Create(*entity.Product) error { return nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (r *stubProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) Update(*entity.Product) error                     { return nil }
func (r *stubProductRepo) Delete(string) error                              { return nil }
func (r *stubProductRepo) AllPrices() (map[string]decimal.Decimal, error)   { return nil, nil }

type stubStoreRepo struct{ stores map[string]*entity.Store }

var _ repository.StoreRepository = (*stubStoreRepo)(nil)

func (r *stubStoreRepo) Create(*entity.Store) error { return nil }
func (r *stubStoreRepo) GetByID(id string) (*entity.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (r *stubStoreRepo) List(int, int) ([]*entity.Store, error) { return nil, nil }
func (r *stubStoreRepo) Update(*entity.Store) error             { return nil }
func (r *stubStoreRepo) Delete(string) error                    { return nil }

type stubAuditRepo struct{ entries []*entity.AuditLog }

var _ repository.AuditRepository = (*stubAuditRepo)(nil)

func (r *stubAuditRepo) Create(log *entity.AuditLog) error {
	r.entries = append(r.entries, log)
	return nil
}
func (r *stubAuditRepo) List(int, int) ([]*entity.AuditLog, error) { return r.entries, nil }

// stubTxRunner pasa los repos tal cual; el fake del libro no necesita
// rollback porque Upsert valida antes de escribir.
type stubTxRunner struct {
	ledger *memLedgerRepo
	audit  *stubAuditRepo
}

var _ stock.TxRunner = (*stubTxRunner)(nil)

func (r *stubTxRunner) RunStock(_ context.Context, fn func(
	ledgerRepo repository.StockLedgerRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return fn(r.ledger, r.audit)
}

func newAdjustEnv(t *testing.T) (*stock.AdjustUseCase, *memLedgerRepo, *stubAuditRepo) {
	t.Helper()
	ledger := newMemLedgerRepo()
	audit := &stubAuditRepo{}
	uc := stock.NewAdjustUseCase(
		&stubTxRunner{ledger: ledger, audit: audit},
		ledger,
		&stubProductRepo{products: map[string]*entity.Product{
			"prod-1": {ID: "prod-1", Name: "Pan"},
		}},
		&stubStoreRepo{stores: map[string]*entity.Store{
			"store-1": {ID: "store-1", Name: "Sucursal Sur"},
		}},
		logger.New(logger.Config{Env: "test", Level: "error"}),
	)
	return uc, ledger, audit
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

var caller = domain.CallerContext{
	UserID:        "user-1",
	Username:      "admin",
	Role:          entity.RoleAdministrador,
	SourceAddress: "127.0.0.1",
}

func TestAdjust_CreaEntradaYAudita(t *testing.T) {
	uc, ledger, audit := newAdjustEnv(t)

	out, err := uc.Adjust(context.Background(), caller, dto.StockAdjustRequest{
		ProductID: "prod-1", StoreID: "store-1", Delta: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), out.Quantity)
	assert.Equal(t, int64(20), ledger.quantity("prod-1", "store-1"))

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, entity.AuditActionStockAdjust, entry.Action)
	assert.Equal(t, "admin", entry.ActorName)
	assert.Contains(t, entry.Detail, "delta=20")
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	uc, _, audit := newAdjustEnv(t)

	_, err := uc.Adjust(context.Background(), caller, dto.StockAdjustRequest{
		ProductID: "prod-x", StoreID: "store-1", Delta: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, audit.entries, "un ajuste rechazado no deja auditoría")
}

func TestAdjust_TiendaInexistente(t *testing.T) {
	uc, _, _ := newAdjustEnv(t)

	_, err := uc.Adjust(context.Background(), caller, dto.StockAdjustRequest{
		ProductID: "prod-1", StoreID: "store-x", Delta: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_DeltaNegativoSobreEntradaExistente(t *testing.T) {
	uc, ledger, _ := newAdjustEnv(t)
	ledger.seed("prod-1", "store-1", 8)

	out, err := uc.Adjust(context.Background(), caller, dto.StockAdjustRequest{
		ProductID: "prod-1", StoreID: "store-1", Delta: -3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Quantity)
}

func TestAdjust_RechazaBajoCero(t *testing.T) {
	uc, ledger, audit := newAdjustEnv(t)
	ledger.seed("prod-1", "store-1", 2)

	_, err := uc.Adjust(context.Background(), caller, dto.StockAdjustRequest{
		ProductID: "prod-1", StoreID: "store-1", Delta: -3,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Equal(t, int64(2), ledger.quantity("prod-1", "store-1"))
	assert.Empty(t, audit.entries)
}

func TestAdjust_EntradaInexistenteConDeltaNegativo(t *testing.T) {
	uc, _, _ := newAdjustEnv(t)

	_, err := uc.Adjust(context.Background(), caller, dto.StockAdjustRequest{
		ProductID: "prod-1", StoreID: "store-1", Delta: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteEntry
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteEntry_Inexistente(t *testing.T) {
	uc, _, _ := newAdjustEnv(t)
	assert.ErrorIs(t, uc.DeleteEntry("no-existe"), domain.ErrNotFound)
}

func TestDeleteEntry_Elimina(t *testing.T) {
	uc, ledger, _ := newAdjustEnv(t)
	e := ledger.seed("prod-1", "store-1", 4)

	require.NoError(t, uc.DeleteEntry(e.ID))
	assert.Equal(t, int64(-1), ledger.quantity("prod-1", "store-1"))
}
