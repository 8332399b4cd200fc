package postgres

import (
	"context"
	"fmt"

	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL.
// La tabla es de solo inserción: no hay UPDATE ni DELETE.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador del registro de auditoría.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste un registro de auditoría.
func (r *AuditRepo) Create(log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, action, actor_id, actor_name, detail, detail_json, source_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.Action, log.ActorID, log.ActorName,
		log.Detail, log.DetailJSON, log.SourceAddress, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List devuelve registros de auditoría, del más reciente al más antiguo.
func (r *AuditRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, action, actor_id, actor_name, detail, detail_json, source_address, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.Action, &l.ActorID, &l.ActorName,
			&l.Detail, &l.DetailJSON, &l.SourceAddress, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
