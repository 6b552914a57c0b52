package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de ubicaciones (bins) sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación nueva.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, tenant_id, warehouse_id, code, name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.TenantID, location.WarehouseID, location.Code,
		location.Name, location.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByCode resuelve la ubicación por código dentro de la bodega; nil si no existe.
func (r *LocationRepo) GetByCode(tenantID, warehouseID, code string) (*entity.Location, error) {
	query := `
		SELECT id, tenant_id, warehouse_id, code, name, created_at
		FROM locations
		WHERE tenant_id = $1 AND warehouse_id = $2 AND code = $3`
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, tenantID, warehouseID, code).Scan(
		&l.ID, &l.TenantID, &l.WarehouseID, &l.Code, &l.Name, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// ListByWarehouse lista las ubicaciones de la bodega ordenadas por código.
func (r *LocationRepo) ListByWarehouse(tenantID, warehouseID string) ([]*entity.Location, error) {
	query := `
		SELECT id, tenant_id, warehouse_id, code, name, created_at
		FROM locations
		WHERE tenant_id = $1 AND warehouse_id = $2
		ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, tenantID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.TenantID, &l.WarehouseID, &l.Code, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
