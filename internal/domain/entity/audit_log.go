package entity

import (
	"encoding/json"
	"time"
)

// AuditLog es un registro append-only de una operación de negocio.
// Detail lleva el request completo serializado (tipo, bodegas, líneas procesadas).
type AuditLog struct {
	ID        string
	TenantID  string
	UserID    string
	Action    string
	Detail    json.RawMessage
	CreatedAt time.Time
}
