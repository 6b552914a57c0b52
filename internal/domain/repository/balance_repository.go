package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// BalanceRepository define el puerto de los saldos materializados por bodega y por bin.
// ApplyWarehouseDelta/ApplyBinDelta deben ser un upsert-increment atómico (una sola
// sentencia), nunca read-then-write: es el respaldo de corrección bajo concurrencia
// además del stock lock.
type BalanceRepository interface {
	// GetWarehouseBalance nunca devuelve nil: si la fila no existe retorna saldo cero.
	GetWarehouseBalance(tenantID, productID, warehouseID string) (*entity.WarehouseBalance, error)
	ApplyWarehouseDelta(tenantID, productID, warehouseID string, delta decimal.Decimal) error
	GetBinBalance(tenantID, productID, warehouseID, locationID string) (*entity.BinBalance, error)
	ApplyBinDelta(tenantID, productID, warehouseID, locationID string, delta decimal.Decimal) error
}
