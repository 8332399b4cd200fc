package sales

import (
	"context"

	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor de ventas:
// si fn retorna error, ninguna mutación de stock ni de venta se persiste.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
