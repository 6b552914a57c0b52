package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones (bins).
type LocationRepository interface {
	Create(location *entity.Location) error
	// GetByCode resuelve el código dentro de la bodega; nil (sin error) si no existe.
	GetByCode(tenantID, warehouseID, code string) (*entity.Location, error)
	ListByWarehouse(tenantID, warehouseID string) ([]*entity.Location, error)
}
