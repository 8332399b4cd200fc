package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Los fallos de validación y de regla de negocio son siempre recuperables:
// abortan la operación completa sin dejar efecto parcial. Los fallos de
// persistencia se envuelven con fmt.Errorf("%w") en la capa de infraestructura
// y el handler HTTP los traduce a un error genérico sin detalle interno.
var (
	// Validación de entrada.
	ErrMissingSelection = errors.New("debe seleccionar cliente y tienda")
	ErrEmptyOrder       = errors.New("la venta debe incluir al menos un producto")
	ErrInvalidQuantity  = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidInput     = errors.New("entrada inválida")

	// Reglas de negocio del libro de stock.
	ErrNoLedgerEntry     = errors.New("no hay inventario del producto en la tienda")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNegativeStock     = errors.New("el ajuste dejaría el stock en negativo")

	// Recursos.
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Acceso.
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
