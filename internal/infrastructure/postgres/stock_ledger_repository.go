package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo implementación del puerto StockLedgerRepository sobre
// PostgreSQL. La tabla stock_entries tiene constraint único sobre
// (product_id, store_id).
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador del libro de stock.
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

const stockEntryColumns = `id, product_id, store_id, quantity, updated_at`

func scanStockEntry(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := row.Scan(&e.ID, &e.ProductID, &e.StoreID, &e.Quantity, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// Get obtiene la entrada de un par (producto, tienda). nil si nunca existió.
func (r *StockLedgerRepo) Get(productID, storeID string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockEntryColumns + ` FROM stock_entries WHERE product_id = $1 AND store_id = $2`
	e, err := scanStockEntry(r.q.QueryRow(context.Background(), query, productID, storeID))
	if err != nil {
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return e, nil
}

// GetForUpdate obtiene la entrada bloqueando su fila hasta el fin de la
// transacción en curso. Solo tiene sentido invocado con un Querier
// transaccional; sobre el pool el bloqueo se libera de inmediato.
func (r *StockLedgerRepo) GetForUpdate(productID, storeID string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockEntryColumns + ` FROM stock_entries WHERE product_id = $1 AND store_id = $2 FOR UPDATE`
	e, err := scanStockEntry(r.q.QueryRow(context.Background(), query, productID, storeID))
	if err != nil {
		return nil, fmt.Errorf("lock stock entry: %w", err)
	}
	return e, nil
}

// GetByID obtiene una entrada por su ID. nil si no existe.
func (r *StockLedgerRepo) GetByID(id string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockEntryColumns + ` FROM stock_entries WHERE id = $1`
	e, err := scanStockEntry(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock entry by id: %w", err)
	}
	return e, nil
}

// Create persiste una nueva entrada del libro.
func (r *StockLedgerRepo) Create(entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (id, product_id, store_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.StoreID, entry.Quantity, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// SetQuantity fija la cantidad absoluta de una entrada.
func (r *StockLedgerRepo) SetQuantity(id string, quantity int64) error {
	query := `UPDATE stock_entries SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	return nil
}

// Delete elimina una entrada del libro.
func (r *StockLedgerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock entry: %w", err)
	}
	return nil
}

// List lista entradas, opcionalmente filtradas por tienda.
func (r *StockLedgerRepo) List(storeID string, limit, offset int) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries
		WHERE ($1 = '' OR store_id = $1)
		ORDER BY product_id, store_id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.StoreID, &e.Quantity, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
