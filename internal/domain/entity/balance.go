package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseBalance es el saldo materializado por (tenant, producto, bodega).
// Invariante: ActualQty == suma de StockLedgerEntry.Qty para la misma clave.
// ReservedQty lo mantiene el subsistema de reservas; aquí solo se lee.
type WarehouseBalance struct {
	TenantID    string
	ProductID   string
	WarehouseID string
	ActualQty   decimal.Decimal
	ReservedQty decimal.Decimal
	UpdatedAt   time.Time
}

// Available devuelve la cantidad comprometible: actual menos reservado.
func (b *WarehouseBalance) Available() decimal.Decimal {
	return b.ActualQty.Sub(b.ReservedQty)
}

// BinBalance es el saldo materializado a nivel de ubicación (bin) dentro de una bodega.
// Misma invariante de suma que WarehouseBalance, restringida a los asientos con esa ubicación.
type BinBalance struct {
	TenantID    string
	ProductID   string
	WarehouseID string
	LocationID  string
	ActualQty   decimal.Decimal
	ReservedQty decimal.Decimal
	UpdatedAt   time.Time
}

// Available devuelve la cantidad comprometible del bin.
func (b *BinBalance) Available() decimal.Decimal {
	return b.ActualQty.Sub(b.ReservedQty)
}
