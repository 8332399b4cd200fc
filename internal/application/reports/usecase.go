package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// Formatos de exportación soportados.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// Export es un reporte ya renderizado, listo para enviarse como descarga.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportUseCase arma los datasets de reportes y los exporta como CSV o PDF.
type ReportUseCase struct {
	repo repository.ReportRepository
	pdf  PDFGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(repo repository.ReportRepository, pdf PDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf}
}

// Inventory exporta el inventario completo con producto y tienda.
func (uc *ReportUseCase) Inventory(ctx context.Context, format string) (*Export, error) {
	rows, err := uc.repo.InventoryRows()
	if err != nil {
		return nil, err
	}
	headers := []string{"ID", "Producto", "Tienda", "Cantidad Disponible"}
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.EntryID, r.ProductName, r.StoreName, strconv.FormatInt(r.Quantity, 10),
		})
	}
	return uc.render(ctx, "inventario", "Reporte de Inventario", format, headers, data)
}

// Sales exporta las ventas con cliente y total.
func (uc *ReportUseCase) Sales(ctx context.Context, format string) (*Export, error) {
	rows, err := uc.repo.SaleRows()
	if err != nil {
		return nil, err
	}
	headers := []string{"ID Venta", "Fecha", "Total", "Cliente"}
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.SaleID, r.Date.Format("2006-01-02"), r.Total.StringFixed(2), r.CustomerName,
		})
	}
	return uc.render(ctx, "ventas", "Reporte de Ventas", format, headers, data)
}

// Customers exporta los clientes registrados.
func (uc *ReportUseCase) Customers(ctx context.Context, format string) (*Export, error) {
	rows, err := uc.repo.CustomerRows()
	if err != nil {
		return nil, err
	}
	headers := []string{"ID Cliente", "Nombre", "Email", "Teléfono"}
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.CustomerID, r.Name, r.Email, r.Phone})
	}
	return uc.render(ctx, "clientes", "Reporte de Clientes", format, headers, data)
}

// Suppliers exporta los proveedores registrados.
func (uc *ReportUseCase) Suppliers(ctx context.Context, format string) (*Export, error) {
	rows, err := uc.repo.SupplierRows()
	if err != nil {
		return nil, err
	}
	headers := []string{"ID Proveedor", "Nombre", "Contacto"}
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.SupplierID, r.Name, r.Contact})
	}
	return uc.render(ctx, "proveedores", "Reporte de Proveedores", format, headers, data)
}

// SaleDetail exporta el detalle de ventas con filtros opcionales por rango
// de fechas y cliente.
func (uc *ReportUseCase) SaleDetail(ctx context.Context, format string, filter repository.SaleDetailFilter) (*Export, error) {
	rows, err := uc.repo.SaleDetailRows(filter)
	if err != nil {
		return nil, err
	}
	headers := []string{
		"ID Detalle", "ID Venta", "Cliente", "Tienda", "Producto",
		"Cantidad", "Precio Unitario", "Subtotal", "Fecha Venta",
	}
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.LineID, r.SaleID, r.CustomerName, r.StoreName, r.ProductName,
			strconv.FormatInt(r.Quantity, 10),
			r.UnitPrice.StringFixed(2), r.Subtotal.StringFixed(2),
			r.Date.Format("2006-01-02"),
		})
	}
	return uc.render(ctx, "detalle_ventas", "Detalle de Ventas", format, headers, data)
}

func (uc *ReportUseCase) render(ctx context.Context, name, title, format string, headers []string, rows [][]string) (*Export, error) {
	switch format {
	case FormatPDF:
		data, err := uc.pdf.GenerateTable(ctx, title, headers, rows)
		if err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		return &Export{
			Filename:    "reporte_" + name + ".pdf",
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	case FormatCSV, "":
		data, err := renderCSV(headers, rows)
		if err != nil {
			return nil, fmt.Errorf("render csv: %w", err)
		}
		return &Export{
			Filename:    "reporte_" + name + ".csv",
			ContentType: "text/csv",
			Data:        data,
		}, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

func renderCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
