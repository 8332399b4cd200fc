package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/application/sales"
	"github.com/inventario-pymes/pos-api/internal/domain"
)

// SaleHandler maneja las peticiones HTTP del motor de ventas (protegido).
// Las mutaciones exigen rol administrador vía RequireAdmin en el router.
type SaleHandler struct {
	uc        *sales.SaleUseCase
	reconcile *sales.ReconcileUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, reconcile *sales.ReconcileUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, reconcile: reconcile}
}

// saleError traduce los errores del motor de ventas a respuestas HTTP.
func saleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingSelection):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SELECTION", Message: "cliente y tienda son requeridos"})
	case errors.Is(err, domain.ErrEmptyOrder):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_ORDER", Message: "la venta debe tener al menos una línea"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser mayor que cero"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrNoLedgerEntry):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_LEDGER_ENTRY", Message: "el producto no está abastecido en esa tienda"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en la tienda"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "cliente, tienda, líneas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), callerFromCtx(c), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Edit godoc
// @Summary      Editar venta
// @Description  Reemplaza el conjunto completo de líneas. La tienda original
// @Description  no cambia; la liberación y la nueva reserva ocurren en la
// @Description  misma transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.EditSaleRequest  true  "cliente, fecha, líneas"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Edit(c.UserContext(), callerFromCtx(c), c.Params("id"), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Devuelve el stock de todas las líneas y borra cabecera y
// @Description  líneas en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Param        id  path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), callerFromCtx(c), c.Params("id")); err != nil {
		return saleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reconciliar totales de ventas
// @Description  Recalcula cada subtotal con el precio de catálogo vigente y
// @Description  cada total como la suma de sus líneas, todo en una sola
// @Description  transacción con registro de auditoría.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/sales/reconcile [post]
func (h *SaleHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reconcile.Run(c.UserContext(), callerFromCtx(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
