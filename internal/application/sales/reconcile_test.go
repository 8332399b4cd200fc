package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventario-pymes/pos-api/internal/application/sales"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/pkg/logger"
)

func newReconcileEnv(t *testing.T) (*memDB, *sales.ReconcileUseCase) {
	t.Helper()
	db := newMemDB()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return db, sales.NewReconcileUseCase(&memTxRunner{db: db}, log)
}

func TestReconcile_CorrigeSubtotalesYTotales(t *testing.T) {
	db, uc := newReconcileEnv(t)

	// Precio vigente 5.00; la línea quedó registrada con un precio viejo.
	db.products[prodPan] = &entity.Product{ID: prodPan, Name: "Pan", Price: decimal.NewFromInt(5)}
	db.sales["v1"] = &entity.Sale{ID: "v1", StoreID: storeSur, Total: decimal.NewFromInt(6)}
	db.lines["l1"] = &entity.SaleLine{
		ID: "l1", SaleID: "v1", ProductID: prodPan,
		Quantity: 3, Subtotal: decimal.NewFromInt(6), // 3 × 2.00 viejo
	}

	out, err := uc.Run(context.Background(), adminCaller)
	require.NoError(t, err)

	assert.Equal(t, 1, out.DetallesRevisados)
	assert.Equal(t, 1, out.DetallesActualizados)
	assert.Equal(t, 1, out.VentasRevisadas)
	assert.Equal(t, 1, out.VentasActualizadas)

	assert.True(t, decimal.NewFromInt(15).Equal(db.lines["l1"].Subtotal),
		"subtotal recalculado con el precio vigente: 3 × 5.00")
	assert.True(t, decimal.NewFromInt(15).Equal(db.sales["v1"].Total))
}

func TestReconcile_TotalDesincronizadoConLineasCorrectas(t *testing.T) {
	db, uc := newReconcileEnv(t)

	db.products[prodPan] = &entity.Product{ID: prodPan, Name: "Pan", Price: decimal.NewFromInt(2)}
	db.sales["v1"] = &entity.Sale{ID: "v1", StoreID: storeSur, Total: decimal.NewFromInt(99)}
	db.lines["l1"] = &entity.SaleLine{
		ID: "l1", SaleID: "v1", ProductID: prodPan,
		Quantity: 2, Subtotal: decimal.NewFromInt(4),
	}

	out, err := uc.Run(context.Background(), adminCaller)
	require.NoError(t, err)

	assert.Equal(t, 0, out.DetallesActualizados, "el subtotal ya era correcto")
	assert.Equal(t, 1, out.VentasActualizadas)
	assert.True(t, decimal.NewFromInt(4).Equal(db.sales["v1"].Total))
}

func TestReconcile_VentaSinLineas_TotalCero(t *testing.T) {
	db, uc := newReconcileEnv(t)

	db.sales["v1"] = &entity.Sale{ID: "v1", StoreID: storeSur, Total: decimal.NewFromInt(7)}

	out, err := uc.Run(context.Background(), adminCaller)
	require.NoError(t, err)

	assert.Equal(t, 1, out.VentasActualizadas)
	assert.True(t, db.sales["v1"].Total.IsZero())
}

func TestReconcile_ProductoEliminado_ConservaElSubtotal(t *testing.T) {
	db, uc := newReconcileEnv(t)

	// Línea que referencia un producto ya fuera del catálogo: su subtotal se
	// conserva tal cual y sigue contando para el total.
	db.sales["v1"] = &entity.Sale{ID: "v1", StoreID: storeSur, Total: decimal.NewFromInt(8)}
	db.lines["l1"] = &entity.SaleLine{
		ID: "l1", SaleID: "v1", ProductID: "prod-borrado",
		Quantity: 2, Subtotal: decimal.NewFromInt(8),
	}

	out, err := uc.Run(context.Background(), adminCaller)
	require.NoError(t, err)

	assert.Equal(t, 0, out.DetallesActualizados)
	assert.Equal(t, 0, out.VentasActualizadas)
	assert.True(t, decimal.NewFromInt(8).Equal(db.lines["l1"].Subtotal))
}

func TestReconcile_EsIdempotente(t *testing.T) {
	db, uc := newReconcileEnv(t)

	db.products[prodPan] = &entity.Product{ID: prodPan, Name: "Pan", Price: decimal.NewFromInt(5)}
	db.sales["v1"] = &entity.Sale{ID: "v1", StoreID: storeSur, Total: decimal.NewFromInt(6)}
	db.lines["l1"] = &entity.SaleLine{
		ID: "l1", SaleID: "v1", ProductID: prodPan,
		Quantity: 3, Subtotal: decimal.NewFromInt(6),
	}

	first, err := uc.Run(context.Background(), adminCaller)
	require.NoError(t, err)
	require.Equal(t, 1, first.DetallesActualizados)

	second, err := uc.Run(context.Background(), adminCaller)
	require.NoError(t, err)
	assert.Equal(t, 0, second.DetallesActualizados,
		"una segunda corrida sin cambios intermedios no actualiza nada")
	assert.Equal(t, 0, second.VentasActualizadas)
}

func TestReconcile_EscribeAuditoria(t *testing.T) {
	db, uc := newReconcileEnv(t)

	db.products[prodPan] = &entity.Product{ID: prodPan, Name: "Pan", Price: decimal.NewFromInt(5)}
	db.sales["v1"] = &entity.Sale{ID: "v1", StoreID: storeSur, Total: decimal.NewFromInt(6)}
	db.lines["l1"] = &entity.SaleLine{
		ID: "l1", SaleID: "v1", ProductID: prodPan,
		Quantity: 3, Subtotal: decimal.NewFromInt(6),
	}

	_, err := uc.Run(context.Background(), adminCaller)
	require.NoError(t, err)

	require.Len(t, db.audits, 1)
	entry := db.audits[0]
	assert.Equal(t, entity.AuditActionReconcile, entry.Action)
	assert.Equal(t, adminCaller.UserID, entry.ActorID)
	assert.Equal(t, adminCaller.Username, entry.ActorName)
	assert.Equal(t, adminCaller.SourceAddress, entry.SourceAddress)
	assert.Contains(t, entry.Detail, "detalles_actualizados=1")
	assert.Contains(t, entry.Detail, "ventas_actualizadas=1")
	assert.NotEmpty(t, entry.DetailJSON)
}

func TestReconcile_NoTocaElStock(t *testing.T) {
	db, uc := newReconcileEnv(t)

	db.products[prodPan] = &entity.Product{ID: prodPan, Name: "Pan", Price: decimal.NewFromInt(5)}
	db.stock["se-pan"] = &entity.StockEntry{ID: "se-pan", ProductID: prodPan, StoreID: storeSur, Quantity: 10}
	db.sales["v1"] = &entity.Sale{ID: "v1", StoreID: storeSur, Total: decimal.NewFromInt(6)}
	db.lines["l1"] = &entity.SaleLine{
		ID: "l1", SaleID: "v1", ProductID: prodPan,
		Quantity: 3, Subtotal: decimal.NewFromInt(6),
	}

	_, err := uc.Run(context.Background(), adminCaller)
	require.NoError(t, err)
	assert.Equal(t, int64(10), db.stockQty(prodPan, storeSur))
}
