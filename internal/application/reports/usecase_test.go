package reports_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventario-pymes/pos-api/internal/application/reports"
	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type stubReportRepo struct {
	lastFilter repository.SaleDetailFilter
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

func (r *stubReportRepo) InventoryRows() ([]repository.InventoryRow, error) {
	return []repository.InventoryRow{
		{EntryID: "e1", ProductName: "Pan", StoreName: "Sur", Quantity: 10},
		{EntryID: "e2", ProductName: "Leche", StoreName: "Sur", Quantity: 5},
	}, nil
}

func (r *stubReportRepo) SaleRows() ([]repository.SaleRow, error) {
	return []repository.SaleRow{
		{SaleID: "v1", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(13), CustomerName: "Ana"},
	}, nil
}

func (r *stubReportRepo) CustomerRows() ([]repository.CustomerRow, error) { return nil, nil }
func (r *stubReportRepo) SupplierRows() ([]repository.SupplierRow, error) { return nil, nil }

func (r *stubReportRepo) SaleDetailRows(filter repository.SaleDetailFilter) ([]repository.SaleDetailRow, error) {
	r.lastFilter = filter
	return nil, nil
}

type stubPDF struct {
	title   string
	headers []string
	rows    [][]string
}

var _ reports.PDFGenerator = (*stubPDF)(nil)

func (g *stubPDF) GenerateTable(_ context.Context, title string, headers []string, rows [][]string) ([]byte, error) {
	g.title = title
	g.headers = headers
	g.rows = rows
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestInventory_CSV(t *testing.T) {
	uc := reports.NewReportUseCase(&stubReportRepo{}, &stubPDF{})

	out, err := uc.Inventory(context.Background(), reports.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "reporte_inventario.csv", out.Filename)
	assert.Equal(t, "text/csv", out.ContentType)

	body := string(out.Data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3, "cabecera + dos filas")
	assert.Contains(t, lines[1], "Pan")
	assert.Contains(t, lines[2], "Leche")
}

func TestSales_PDF(t *testing.T) {
	pdf := &stubPDF{}
	uc := reports.NewReportUseCase(&stubReportRepo{}, pdf)

	out, err := uc.Sales(context.Background(), reports.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "reporte_ventas.pdf", out.Filename)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, []byte("%PDF-fake"), out.Data)

	assert.Equal(t, "Reporte de Ventas", pdf.title)
	require.Len(t, pdf.rows, 1)
	assert.Contains(t, pdf.rows[0], "Ana")
	assert.Contains(t, pdf.rows[0], "13.00")
}

func TestFormatoVacio_UsaCSV(t *testing.T) {
	uc := reports.NewReportUseCase(&stubReportRepo{}, &stubPDF{})

	out, err := uc.Inventory(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", out.ContentType)
}

func TestFormatoDesconocido(t *testing.T) {
	uc := reports.NewReportUseCase(&stubReportRepo{}, &stubPDF{})

	_, err := uc.Inventory(context.Background(), "xlsx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleDetail_PropagaElFiltro(t *testing.T) {
	repo := &stubReportRepo{}
	uc := reports.NewReportUseCase(repo, &stubPDF{})

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := repository.SaleDetailFilter{From: &from, CustomerID: "cli-ana"}
	_, err := uc.SaleDetail(context.Background(), reports.FormatCSV, filter)
	require.NoError(t, err)

	assert.Equal(t, "cli-ana", repo.lastFilter.CustomerID)
	require.NotNil(t, repo.lastFilter.From)
	assert.True(t, from.Equal(*repo.lastFilter.From))
}
