package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.TenantSettingsRepository = (*TenantSettingsRepo)(nil)

// TenantSettingsRepo implementación de la política del tenant sobre PostgreSQL.
type TenantSettingsRepo struct {
	q Querier
}

// NewTenantSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantSettingsRepository(q Querier) *TenantSettingsRepo {
	return &TenantSettingsRepo{q: q}
}

// Get obtiene la configuración del tenant; nil si no hay fila (el caller aplica el default).
func (r *TenantSettingsRepo) Get(tenantID string) (*entity.TenantSettings, error) {
	query := `
		SELECT tenant_id, allow_negative_stock, updated_at
		FROM tenant_settings WHERE tenant_id = $1`
	var s entity.TenantSettings
	err := r.q.QueryRow(context.Background(), query, tenantID).Scan(
		&s.TenantID, &s.AllowNegativeStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant settings: %w", err)
	}
	return &s, nil
}
