package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Cabecera en sales, líneas en sale_lines con FK a la cabecera.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, customer_id, store_id, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Date, sale.CustomerID, sale.StoreID, sale.Total,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta. nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, date, customer_id, store_id, total, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Date, &s.CustomerID, &s.StoreID, &s.Total, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List lista ventas ordenadas por fecha descendente.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, date, customer_id, store_id, total, created_at, updated_at
		FROM sales ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// ListAll devuelve todas las ventas. Lo usa la reconciliación para recorrer
// el conjunto completo dentro de una sola transacción.
func (r *SaleRepo) ListAll() ([]*entity.Sale, error) {
	query := `
		SELECT id, date, customer_id, store_id, total, created_at, updated_at
		FROM sales ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

func scanSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.CustomerID, &s.StoreID, &s.Total, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// UpdateHeader actualiza fecha, cliente, total y updated_at de la cabecera.
// La tienda es inmutable y queda fuera del SET.
func (r *SaleRepo) UpdateHeader(sale *entity.Sale) error {
	query := `
		UPDATE sales SET date = $2, customer_id = $3, total = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Date, sale.CustomerID, sale.Total, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale header: %w", err)
	}
	return nil
}

// UpdateTotal fija el total de una venta.
func (r *SaleRepo) UpdateTotal(id string, total decimal.Decimal) error {
	query := `UPDATE sales SET total = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, total)
	if err != nil {
		return fmt.Errorf("update sale total: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una venta. Las líneas deben eliminarse antes
// con DeleteLines.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de venta.
func (r *SaleRepo) CreateLine(line *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.SaleID, line.ProductID, line.Quantity, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// ListLines devuelve las líneas de una venta.
func (r *SaleRepo) ListLines(saleID string) ([]*entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	return scanSaleLines(rows)
}

// ListAllLines devuelve todas las líneas de venta del sistema.
func (r *SaleRepo) ListAllLines() ([]*entity.SaleLine, error) {
	query := `SELECT id, sale_id, product_id, quantity, subtotal FROM sale_lines ORDER BY sale_id, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all sale lines: %w", err)
	}
	defer rows.Close()
	return scanSaleLines(rows)
}

func scanSaleLines(rows pgx.Rows) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// DeleteLines elimina todas las líneas de una venta.
func (r *SaleRepo) DeleteLines(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_lines WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete sale lines: %w", err)
	}
	return nil
}

// UpdateLineSubtotal fija el subtotal de una línea.
func (r *SaleRepo) UpdateLineSubtotal(id string, subtotal decimal.Decimal) error {
	query := `UPDATE sale_lines SET subtotal = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, subtotal)
	if err != nil {
		return fmt.Errorf("update sale line subtotal: %w", err)
	}
	return nil
}
