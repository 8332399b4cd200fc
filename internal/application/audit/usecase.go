// Package audit expone la consulta del registro de auditoría.
package audit

import (
	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// AuditUseCase lista los registros de auditoría. La escritura ocurre dentro
// de las transacciones de los casos de uso que auditan (ajustes de stock,
// reconciliación), nunca por separado.
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List devuelve registros de auditoría paginados, del más reciente al más
// antiguo.
func (uc *AuditUseCase) List(limit, offset int) ([]dto.AuditLogResponse, error) {
	logs, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.AuditLogResponse{
			ID:            l.ID,
			Action:        l.Action,
			ActorID:       l.ActorID,
			ActorName:     l.ActorName,
			Detail:        l.Detail,
			SourceAddress: l.SourceAddress,
			CreatedAt:     l.CreatedAt,
		})
	}
	return out, nil
}
