package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/application/sales"
	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: dos productos, un cliente, una tienda y stock inicial.
// ──────────────────────────────────────────────────────────────────────────────

const (
	prodPan   = "prod-pan"
	prodLeche = "prod-leche"
	cliAna    = "cli-ana"
	storeSur  = "store-sur"
)

var adminCaller = domain.CallerContext{
	UserID:        "user-1",
	Username:      "admin",
	Role:          entity.RoleAdministrador,
	SourceAddress: "127.0.0.1",
}

type testEnv struct {
	db *memDB
	uc *sales.SaleUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newMemDB()
	db.products[prodPan] = &entity.Product{ID: prodPan, Name: "Pan", Price: decimal.NewFromInt(2)}
	db.products[prodLeche] = &entity.Product{ID: prodLeche, Name: "Leche", Price: decimal.NewFromFloat(3.50)}
	db.customers[cliAna] = &entity.Customer{ID: cliAna, Name: "Ana"}
	db.stores[storeSur] = &entity.Store{ID: storeSur, Name: "Sucursal Sur"}
	db.stock["se-pan"] = &entity.StockEntry{ID: "se-pan", ProductID: prodPan, StoreID: storeSur, Quantity: 10}
	db.stock["se-leche"] = &entity.StockEntry{ID: "se-leche", ProductID: prodLeche, StoreID: storeSur, Quantity: 5}

	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := sales.NewSaleUseCase(
		&memTxRunner{db: db},
		&memSaleRepo{db: db},
		&memCustomerRepo{db: db},
		&memStoreRepo{db: db},
		&memProductRepo{db: db},
		log,
	)
	return &testEnv{db: db, uc: uc}
}

func saleReq(lines ...dto.SaleLineRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{CustomerID: cliAna, StoreID: storeSur, Lines: lines}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ReservaStockYCalculaTotal(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.uc.Create(context.Background(), adminCaller, saleReq(
		dto.SaleLineRequest{ProductID: prodPan, Quantity: 3},
		dto.SaleLineRequest{ProductID: prodLeche, Quantity: 2},
	))
	require.NoError(t, err)

	// Total con precio de catálogo: 3×2.00 + 2×3.50 = 13.00
	assert.True(t, decimal.NewFromInt(13).Equal(out.Total),
		"total esperado 13.00, obtenido %s", out.Total)
	assert.Len(t, out.Lines, 2)

	assert.Equal(t, int64(7), env.db.stockQty(prodPan, storeSur))
	assert.Equal(t, int64(3), env.db.stockQty(prodLeche, storeSur))

	// El total persistido cumple total == Σ subtotales.
	persisted := env.db.sales[out.ID]
	require.NotNil(t, persisted)
	assert.True(t, entity.SumSubtotals(env.db.linesOf(out.ID)).Equal(persisted.Total))
}

func TestCreate_SinClienteOTienda(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), adminCaller, dto.CreateSaleRequest{
		StoreID: storeSur,
		Lines:   []dto.SaleLineRequest{{ProductID: prodPan, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingSelection)

	_, err = env.uc.Create(context.Background(), adminCaller, dto.CreateSaleRequest{
		CustomerID: cliAna,
		Lines:      []dto.SaleLineRequest{{ProductID: prodPan, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingSelection)
}

func TestCreate_SinLineas(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.uc.Create(context.Background(), adminCaller, saleReq())
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestCreate_CantidadInvalida(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), adminCaller, saleReq(
		dto.SaleLineRequest{ProductID: prodPan, Quantity: 0},
	))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, int64(10), env.db.stockQty(prodPan, storeSur))
}

func TestCreate_ProductoSinEntradaEnTienda(t *testing.T) {
	env := newTestEnv(t)
	env.db.stores["store-norte"] = &entity.Store{ID: "store-norte", Name: "Sucursal Norte"}

	in := saleReq(dto.SaleLineRequest{ProductID: prodPan, Quantity: 1})
	in.StoreID = "store-norte"
	_, err := env.uc.Create(context.Background(), adminCaller, in)
	assert.ErrorIs(t, err, domain.ErrNoLedgerEntry,
		"producto nunca abastecido en la tienda: no sellable")
}

func TestCreate_StockInsuficiente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), adminCaller, saleReq(
		dto.SaleLineRequest{ProductID: prodLeche, Quantity: 6},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), env.db.stockQty(prodLeche, storeSur))
}

func TestCreate_FallaEnSegundaLinea_RevierteLaPrimera(t *testing.T) {
	env := newTestEnv(t)

	// La primera línea cabe; la segunda no. Nada debe quedar persistido.
	_, err := env.uc.Create(context.Background(), adminCaller, saleReq(
		dto.SaleLineRequest{ProductID: prodPan, Quantity: 3},
		dto.SaleLineRequest{ProductID: prodLeche, Quantity: 99},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), env.db.stockQty(prodPan, storeSur),
		"la reserva de la primera línea debe revertirse con la transacción")
	assert.Empty(t, env.db.sales)
	assert.Empty(t, env.db.lines)
}

func TestCreate_ReservaExactamenteDisponible(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), adminCaller, saleReq(
		dto.SaleLineRequest{ProductID: prodLeche, Quantity: 5},
	))
	require.NoError(t, err)
	assert.Equal(t, int64(0), env.db.stockQty(prodLeche, storeSur))
}

func TestCreate_FechaInvalida(t *testing.T) {
	env := newTestEnv(t)

	in := saleReq(dto.SaleLineRequest{ProductID: prodPan, Quantity: 1})
	in.Date = "31-12-2025"
	_, err := env.uc.Create(context.Background(), adminCaller, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ElPrecioDeCatalogoEsAutoritativo(t *testing.T) {
	env := newTestEnv(t)

	// El catálogo cambia antes de la venta: la venta usa el precio nuevo.
	env.db.products[prodPan].Price = decimal.NewFromInt(9)

	out, err := env.uc.Create(context.Background(), adminCaller, saleReq(
		dto.SaleLineRequest{ProductID: prodPan, Quantity: 2},
	))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(18).Equal(out.Total))
}

// ──────────────────────────────────────────────────────────────────────────────
// Edit
// ──────────────────────────────────────────────────────────────────────────────

func mustCreate(t *testing.T, env *testEnv, lines ...dto.SaleLineRequest) *dto.SaleResponse {
	t.Helper()
	out, err := env.uc.Create(context.Background(), adminCaller, saleReq(lines...))
	require.NoError(t, err)
	return out
}

func TestEdit_ReemplazaElConjuntoDeLineas(t *testing.T) {
	env := newTestEnv(t)
	sale := mustCreate(t, env, dto.SaleLineRequest{ProductID: prodPan, Quantity: 4})
	require.Equal(t, int64(6), env.db.stockQty(prodPan, storeSur))

	out, err := env.uc.Edit(context.Background(), adminCaller, sale.ID, dto.EditSaleRequest{
		CustomerID: cliAna,
		Lines: []dto.SaleLineRequest{
			{ProductID: prodPan, Quantity: 1},
			{ProductID: prodLeche, Quantity: 2},
		},
	})
	require.NoError(t, err)

	// Stock neto: pan 10-1=9, leche 5-2=3.
	assert.Equal(t, int64(9), env.db.stockQty(prodPan, storeSur))
	assert.Equal(t, int64(3), env.db.stockQty(prodLeche, storeSur))

	// Total nuevo: 1×2.00 + 2×3.50 = 9.00
	assert.True(t, decimal.NewFromInt(9).Equal(out.Total))
	assert.Len(t, env.db.linesOf(sale.ID), 2)
}

func TestEdit_PuedeCrecerDentroDelStockLiberado(t *testing.T) {
	env := newTestEnv(t)
	sale := mustCreate(t, env, dto.SaleLineRequest{ProductID: prodLeche, Quantity: 5})
	require.Equal(t, int64(0), env.db.stockQty(prodLeche, storeSur))

	// Todo el stock está en la venta; editar a la misma cantidad debe caber
	// porque la liberación ocurre antes de la nueva reserva.
	_, err := env.uc.Edit(context.Background(), adminCaller, sale.ID, dto.EditSaleRequest{
		CustomerID: cliAna,
		Lines:      []dto.SaleLineRequest{{ProductID: prodLeche, Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), env.db.stockQty(prodLeche, storeSur))
}

func TestEdit_FallaDelNuevoConjunto_NoConfirmaLaLiberacion(t *testing.T) {
	env := newTestEnv(t)
	sale := mustCreate(t, env, dto.SaleLineRequest{ProductID: prodPan, Quantity: 4})
	require.Equal(t, int64(6), env.db.stockQty(prodPan, storeSur))

	// El conjunto nuevo pide más de lo que existe incluso tras liberar.
	_, err := env.uc.Edit(context.Background(), adminCaller, sale.ID, dto.EditSaleRequest{
		CustomerID: cliAna,
		Lines:      []dto.SaleLineRequest{{ProductID: prodPan, Quantity: 50}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni la liberación ni el borrado de líneas deben haberse confirmado.
	assert.Equal(t, int64(6), env.db.stockQty(prodPan, storeSur),
		"una edición fallida no puede regalar stock liberado")
	lines := env.db.linesOf(sale.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(4), lines[0].Quantity)
}

func TestEdit_VentaInexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.uc.Edit(context.Background(), adminCaller, "no-existe", dto.EditSaleRequest{
		CustomerID: cliAna,
		Lines:      []dto.SaleLineRequest{{ProductID: prodPan, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEdit_LaTiendaOriginalNoCambia(t *testing.T) {
	env := newTestEnv(t)
	sale := mustCreate(t, env, dto.SaleLineRequest{ProductID: prodPan, Quantity: 2})

	_, err := env.uc.Edit(context.Background(), adminCaller, sale.ID, dto.EditSaleRequest{
		CustomerID: cliAna,
		Lines:      []dto.SaleLineRequest{{ProductID: prodPan, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, storeSur, env.db.sales[sale.ID].StoreID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RestauraElStock(t *testing.T) {
	env := newTestEnv(t)
	sale := mustCreate(t, env,
		dto.SaleLineRequest{ProductID: prodPan, Quantity: 3},
		dto.SaleLineRequest{ProductID: prodLeche, Quantity: 2},
	)

	require.NoError(t, env.uc.Delete(context.Background(), adminCaller, sale.ID))

	assert.Equal(t, int64(10), env.db.stockQty(prodPan, storeSur))
	assert.Equal(t, int64(5), env.db.stockQty(prodLeche, storeSur))
	assert.Empty(t, env.db.sales)
	assert.Empty(t, env.db.lines)
}

func TestDelete_VentaInexistente(t *testing.T) {
	env := newTestEnv(t)
	err := env.uc.Delete(context.Background(), adminCaller, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conservación: el ciclo crear → editar → eliminar no crea ni destruye stock.
// ──────────────────────────────────────────────────────────────────────────────

func TestCicloCompleto_ConservaElStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sale := mustCreate(t, env, dto.SaleLineRequest{ProductID: prodPan, Quantity: 4})

	_, err := env.uc.Edit(ctx, adminCaller, sale.ID, dto.EditSaleRequest{
		CustomerID: cliAna,
		Lines:      []dto.SaleLineRequest{{ProductID: prodPan, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.Delete(ctx, adminCaller, sale.ID))

	assert.Equal(t, int64(10), env.db.stockQty(prodPan, storeSur))
	assert.Equal(t, int64(5), env.db.stockQty(prodLeche, storeSur))
}
