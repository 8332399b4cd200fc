package entity

import "time"

// Acciones registradas en la auditoría.
const (
	AuditActionReconcile   = "reconciliar_totales"
	AuditActionStockAdjust = "ajuste_inventario"
)

// AuditLog es un registro de auditoría de solo inserción. Detail es el
// resumen legible; DetailJSON guarda la versión estructurada (conteos).
type AuditLog struct {
	ID            string
	Action        string
	ActorID       string
	ActorName     string
	Detail        string
	DetailJSON    []byte
	SourceAddress string
	CreatedAt     time.Time
}
