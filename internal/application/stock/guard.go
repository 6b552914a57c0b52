package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// NegativeStockGuard decide si un delta negativo puede aplicarse según la política
// del tenant. Los saldos que recibe deben haberse leído con el stock lock ya tomado,
// dentro de la misma transacción: de lo contrario dos salidas concurrentes podrían
// pasar el chequeo contra un saldo compartido obsoleto.
type NegativeStockGuard struct {
	AllowNegative bool
}

// CheckWarehouse valida el delta contra la disponibilidad a nivel bodega
// (actual menos reservado). delta >= 0 o política permisiva pasan siempre.
func (g NegativeStockGuard) CheckWarehouse(sku, warehouseCode string, bal *entity.WarehouseBalance, delta decimal.Decimal) error {
	if g.AllowNegative || !delta.IsNegative() {
		return nil
	}
	required := delta.Neg()
	if required.GreaterThan(bal.Available()) {
		return &domain.InsufficientStockError{
			Scope:         domain.InsufficientScopeWarehouse,
			SKU:           sku,
			WarehouseCode: warehouseCode,
			Available:     bal.Available(),
			Required:      required,
		}
	}
	return nil
}

// CheckBin valida el delta contra el saldo del bin: el actual del bin más el delta
// no puede quedar bajo cero.
func (g NegativeStockGuard) CheckBin(sku, warehouseCode, locationCode string, bal *entity.BinBalance, delta decimal.Decimal) error {
	if g.AllowNegative || !delta.IsNegative() {
		return nil
	}
	if bal.ActualQty.Add(delta).IsNegative() {
		return &domain.InsufficientStockError{
			Scope:         domain.InsufficientScopeBin,
			SKU:           sku,
			WarehouseCode: warehouseCode,
			LocationCode:  locationCode,
			Available:     bal.ActualQty,
			Required:      delta.Neg(),
		}
	}
	return nil
}
