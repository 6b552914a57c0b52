package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
// Desde el core de movimientos es solo lectura (resolución SKU → ID y flags de trazabilidad).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetBySKU devuelve nil (sin error) si no existe el SKU en el tenant.
	GetBySKU(tenantID, sku string) (*entity.Product, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error)
}
