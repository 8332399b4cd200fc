package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventario-pymes/pos-api/internal/application/sales"
	"github.com/inventario-pymes/pos-api/internal/application/stock"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner y stock.TxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale inicia una transacción con los repos del motor de ventas y hace
// Commit o Rollback. Si fn retorna error, nada queda persistido.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saleRepo := NewSaleRepository(tx)
	ledgerRepo := NewStockLedgerRepository(tx)
	productRepo := NewProductRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(saleRepo, ledgerRepo, productRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con los repos del ajuste administrativo de
// inventario (libro de stock + auditoría).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	ledgerRepo repository.StockLedgerRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockLedgerRepository(tx), NewAuditRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
