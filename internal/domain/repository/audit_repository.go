package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// AuditLogRepository define el puerto del registro de auditoría (append-only).
type AuditLogRepository interface {
	Create(record *entity.AuditLog) error
}
