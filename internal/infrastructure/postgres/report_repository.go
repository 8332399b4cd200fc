package postgres

import (
	"context"
	"fmt"

	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo resuelve las filas desnormalizadas de los reportes con JOINs.
// Es un adaptador de solo lectura; siempre opera sobre el pool.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de lectura para reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventoryRows devuelve el inventario con nombres de producto y tienda.
func (r *ReportRepo) InventoryRows() ([]repository.InventoryRow, error) {
	query := `
		SELECT se.id, p.name, s.name, se.quantity
		FROM stock_entries se
		JOIN products p ON p.id = se.product_id
		JOIN stores s ON s.id = se.store_id
		ORDER BY p.name, s.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("inventory report: %w", err)
	}
	defer rows.Close()

	var out []repository.InventoryRow
	for rows.Next() {
		var row repository.InventoryRow
		if err := rows.Scan(&row.EntryID, &row.ProductName, &row.StoreName, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SaleRows devuelve las ventas con el nombre del cliente.
func (r *ReportRepo) SaleRows() ([]repository.SaleRow, error) {
	query := `
		SELECT v.id, v.date, v.total, c.name
		FROM sales v
		JOIN customers c ON c.id = v.customer_id
		ORDER BY v.date DESC, v.created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	defer rows.Close()

	var out []repository.SaleRow
	for rows.Next() {
		var row repository.SaleRow
		if err := rows.Scan(&row.SaleID, &row.Date, &row.Total, &row.CustomerName); err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CustomerRows devuelve el listado de clientes.
func (r *ReportRepo) CustomerRows() ([]repository.CustomerRow, error) {
	query := `SELECT id, name, COALESCE(email, ''), phone FROM customers ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("customers report: %w", err)
	}
	defer rows.Close()

	var out []repository.CustomerRow
	for rows.Next() {
		var row repository.CustomerRow
		if err := rows.Scan(&row.CustomerID, &row.Name, &row.Email, &row.Phone); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SupplierRows devuelve el listado de proveedores.
func (r *ReportRepo) SupplierRows() ([]repository.SupplierRow, error) {
	query := `SELECT id, name, contact FROM suppliers ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("suppliers report: %w", err)
	}
	defer rows.Close()

	var out []repository.SupplierRow
	for rows.Next() {
		var row repository.SupplierRow
		if err := rows.Scan(&row.SupplierID, &row.Name, &row.Contact); err != nil {
			return nil, fmt.Errorf("scan supplier row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SaleDetailRows devuelve las líneas de venta con cliente, tienda, producto
// y precio unitario derivado, acotadas por el filtro.
func (r *ReportRepo) SaleDetailRows(filter repository.SaleDetailFilter) ([]repository.SaleDetailRow, error) {
	query := `
		SELECT l.id, v.id, c.name, s.name, p.name, l.quantity,
		       CASE WHEN l.quantity > 0 THEN l.subtotal / l.quantity ELSE 0 END,
		       l.subtotal, v.date
		FROM sale_lines l
		JOIN sales v ON v.id = l.sale_id
		JOIN customers c ON c.id = v.customer_id
		JOIN stores s ON s.id = v.store_id
		JOIN products p ON p.id = l.product_id
		WHERE ($1::timestamptz IS NULL OR v.date >= $1)
		  AND ($2::timestamptz IS NULL OR v.date <= $2)
		  AND ($3 = '' OR v.customer_id = $3)
		ORDER BY v.date DESC, v.id, l.id`
	rows, err := r.q.Query(context.Background(), query, filter.From, filter.To, filter.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("sale detail report: %w", err)
	}
	defer rows.Close()

	var out []repository.SaleDetailRow
	for rows.Next() {
		var row repository.SaleDetailRow
		if err := rows.Scan(&row.LineID, &row.SaleID, &row.CustomerName, &row.StoreName,
			&row.ProductName, &row.Quantity, &row.UnitPrice, &row.Subtotal, &row.Date); err != nil {
			return nil, fmt.Errorf("scan sale detail row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
