package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/application/stock"
	"github.com/inventario-pymes/pos-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP del libro de stock (protegido).
type StockHandler struct {
	uc *stock.AdjustUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.AdjustUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  Suma delta a la entrada (producto, tienda). Crea la entrada si
// @Description  no existe y delta es positivo; rechaza ajustes que dejarían la
// @Description  cantidad bajo cero.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustRequest  true  "producto, tienda, delta"
// @Success      200   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Adjust(c.UserContext(), callerFromCtx(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ajuste inválido para una entrada inexistente"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o tienda no encontrados"})
		case errors.Is(err, domain.ErrNegativeStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NEGATIVE_STOCK", Message: "el ajuste dejaría la cantidad bajo cero"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// Quantity godoc
// @Summary      Consultar cantidad disponible
// @Description  Devuelve 0 tanto para entradas agotadas como inexistentes.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Param        store_id    query  string  true  "ID de la tienda"
// @Success      200  {object}  map[string]int64
// @Router       /api/stock/quantity [get]
func (h *StockHandler) Quantity(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	storeID := c.Query("store_id")
	if productID == "" || storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y store_id son requeridos"})
	}
	qty, err := h.uc.GetQuantity(productID, storeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"quantity": qty})
}

// List godoc
// @Summary      Listar entradas del libro de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por tienda"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {array}  dto.StockEntryResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Query("store_id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrada del libro de stock
// @Tags         stock
// @Security     Bearer
// @Param        id  path  string  true  "ID de la entrada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteEntry(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
