package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// TenantSettingsRepository define el puerto de lectura de la política del tenant.
type TenantSettingsRepository interface {
	// Get devuelve nil (sin error) si el tenant no tiene fila de configuración;
	// el caller aplica el default (stock negativo no permitido).
	Get(tenantID string) (*entity.TenantSettings, error)
}
