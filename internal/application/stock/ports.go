package stock

import (
	"context"

	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El ajuste administrativo muta una sola
// entrada del libro, pero igual corre bajo transacción para que la lectura
// con bloqueo y la escritura sean atómicas.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		ledgerRepo repository.StockLedgerRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
