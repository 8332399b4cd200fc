package repository

import "github.com/inventario-pymes/pos-api/internal/domain/entity"

// AuditRepository define el puerto del registro de auditoría (solo inserción).
type AuditRepository interface {
	Create(log *entity.AuditLog) error
	List(limit, offset int) ([]*entity.AuditLog, error)
}
