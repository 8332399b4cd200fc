package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/application/reports"
	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// ReportHandler maneja la exportación de reportes (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// sendExport envía un reporte renderizado como descarga.
func sendExport(c *fiber.Ctx, export *reports.Export, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato no soportado: use csv o pdf"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.Send(export.Data)
}

// format lee el formato pedido; csv por defecto.
func format(c *fiber.Ctx) string {
	f := c.Query("format")
	if f == "" {
		return reports.FormatCSV
	}
	return f
}

// Inventory godoc
// @Summary      Exportar reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Param        format  query  string  false  "csv o pdf"  default(csv)
// @Success      200  {file}  binary
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	export, err := h.uc.Inventory(c.UserContext(), format(c))
	return sendExport(c, export, err)
}

// Sales godoc
// @Summary      Exportar reporte de ventas
// @Tags         reports
// @Security     Bearer
// @Param        format  query  string  false  "csv o pdf"  default(csv)
// @Success      200  {file}  binary
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	export, err := h.uc.Sales(c.UserContext(), format(c))
	return sendExport(c, export, err)
}

// Customers godoc
// @Summary      Exportar reporte de clientes
// @Tags         reports
// @Security     Bearer
// @Param        format  query  string  false  "csv o pdf"  default(csv)
// @Success      200  {file}  binary
// @Router       /api/reports/customers [get]
func (h *ReportHandler) Customers(c *fiber.Ctx) error {
	export, err := h.uc.Customers(c.UserContext(), format(c))
	return sendExport(c, export, err)
}

// Suppliers godoc
// @Summary      Exportar reporte de proveedores
// @Tags         reports
// @Security     Bearer
// @Param        format  query  string  false  "csv o pdf"  default(csv)
// @Success      200  {file}  binary
// @Router       /api/reports/suppliers [get]
func (h *ReportHandler) Suppliers(c *fiber.Ctx) error {
	export, err := h.uc.Suppliers(c.UserContext(), format(c))
	return sendExport(c, export, err)
}

// SaleDetail godoc
// @Summary      Exportar detalle de ventas
// @Tags         reports
// @Security     Bearer
// @Param        format       query  string  false  "csv o pdf"  default(csv)
// @Param        from         query  string  false  "Fecha desde (2006-01-02)"
// @Param        to           query  string  false  "Fecha hasta (2006-01-02)"
// @Param        customer_id  query  string  false  "Filtrar por cliente"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sale-detail [get]
func (h *ReportHandler) SaleDetail(c *fiber.Ctx) error {
	filter := repository.SaleDetailFilter{CustomerID: c.Query("customer_id")}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido: use 2006-01-02"})
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido: use 2006-01-02"})
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	export, err := h.uc.SaleDetail(c.UserContext(), format(c), filter)
	return sendExport(c, export, err)
}
