package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeRECEIPT    = "RECEIPT"    // entrada
	MovementTypeISSUE      = "ISSUE"      // salida
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas (dos asientos, mismo comprobante)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste; el signo lo da el caller
)

// Tipos de comprobante asociados a cada movimiento.
const (
	VoucherTypeReceipt    = "Stock Receipt"
	VoucherTypeIssue      = "Stock Issue"
	VoucherTypeTransfer   = "Stock Transfer"
	VoucherTypeAdjustment = "Stock Adjustment"
)

// IsValidMovementType indica si el tipo de movimiento pertenece al enum cerrado.
func IsValidMovementType(movementType string) bool {
	switch movementType {
	case MovementTypeRECEIPT, MovementTypeISSUE, MovementTypeTRANSFER, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// VoucherTypeFor devuelve el tipo de comprobante para un tipo de movimiento.
func VoucherTypeFor(movementType string) string {
	switch movementType {
	case MovementTypeRECEIPT:
		return VoucherTypeReceipt
	case MovementTypeISSUE:
		return VoucherTypeIssue
	case MovementTypeTRANSFER:
		return VoucherTypeTransfer
	case MovementTypeADJUSTMENT:
		return VoucherTypeAdjustment
	}
	return ""
}

// VoucherPrefixFor devuelve el prefijo del número de comprobante (SR, SI, ST, SA).
func VoucherPrefixFor(movementType string) string {
	switch movementType {
	case MovementTypeRECEIPT:
		return "SR"
	case MovementTypeISSUE:
		return "SI"
	case MovementTypeTRANSFER:
		return "ST"
	case MovementTypeADJUSTMENT:
		return "SA"
	}
	return ""
}

// StockLedgerEntry es un asiento inmutable del libro de stock (append-only).
// Nunca se actualiza ni se borra; una cancelación se modela como asiento inverso nuevo.
// Qty es con signo: positivo aumenta stock, negativo lo disminuye.
type StockLedgerEntry struct {
	ID             string
	TenantID       string
	PostingTS      time.Time // orden de inserción (reloj de pared)
	PostingDate    time.Time // fecha de negocio
	ProductID      string
	WarehouseID    string
	LocationID     *string // ubicación/bin afectado, si aplica
	BatchID        *string
	SerialNo       *string
	Qty            decimal.Decimal
	Rate           decimal.Decimal // tasa de valoración
	StockValueDiff decimal.Decimal // Qty * Rate, con signo
	VoucherType    string
	VoucherNo      string
	CreatedAt      time.Time
	CreatedBy      string
}
