// Package pdf implementa la exportación tabular de reportes a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: cabecera en azul + una fila por registro             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/inventario-pymes/pos-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// maroto reparte cada fila en una grilla de 12 columnas.
const gridWidth = 12

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateTable genera un PDF tabular y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateTable(
	_ context.Context,
	title string,
	headers []string,
	body [][]string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := columnWidths(len(headers))
	m.AddRows(tableHeaderRow(headers, widths))
	for _, cells := range body {
		m.AddRows(tableBodyRow(cells, widths))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(body)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla en negrita.
func tableHeaderRow(headers []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
			Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// tableBodyRow: una fila de datos. Celdas faltantes quedan en blanco.
func tableBodyRow(cells []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(widths))
	for i, w := range widths {
		var v string
		if i < len(cells) {
			v = cells[i]
		}
		cols = append(cols, col.New(w).Add(text.New(v, props.Text{
			Size: 8, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

// footerRow: total de registros del reporte.
func footerRow(count int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de registros: %d", count), props.Text{
			Size: 8, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte la grilla de 12 entre n columnas; el resto de la
// división se acumula en la primera columna.
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	base := gridWidth / n
	if base == 0 {
		base = 1
	}
	widths := make([]int, n)
	used := 0
	for i := range widths {
		widths[i] = base
		used += base
	}
	if used < gridWidth {
		widths[0] += gridWidth - used
	}
	return widths
}
