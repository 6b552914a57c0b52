package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para bodegas.
// Desde el core de movimientos es solo lectura (resolución código → ID).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	// GetByCode devuelve nil (sin error) si no existe una bodega con ese código en el tenant.
	GetByCode(tenantID, code string) (*entity.Warehouse, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Warehouse, error)
}
