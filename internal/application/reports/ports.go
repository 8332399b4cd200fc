package reports

import "context"

// PDFGenerator renderiza un reporte tabular como PDF. Lo implementa la capa
// de infraestructura (Maroto).
type PDFGenerator interface {
	GenerateTable(ctx context.Context, title string, headers []string, rows [][]string) ([]byte, error)
}
