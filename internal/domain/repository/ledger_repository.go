package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// LedgerEntryFilter filtros del listado de asientos. Los códigos se filtran
// por join (el caller maneja códigos legibles, no IDs internos).
type LedgerEntryFilter struct {
	VoucherType   *string
	WarehouseCode *string
	SKU           *string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// MovementRecord es la proyección de lectura de un asiento con los códigos
// legibles ya resueltos (SKU, bodega, ubicación, lote).
type MovementRecord struct {
	ID             string
	PostingTS      time.Time
	PostingDate    time.Time
	SKU            string
	ItemName       string
	WarehouseCode  string
	LocationCode   *string
	BatchNo        *string
	SerialNo       *string
	Qty            decimal.Decimal
	Rate           decimal.Decimal
	StockValueDiff decimal.Decimal
	VoucherType    string
	VoucherNo      string
	CreatedBy      string
}

// VoucherTypeSummary agregado del libro por tipo de comprobante.
type VoucherTypeSummary struct {
	VoucherType string
	Entries     int
	TotalQty    decimal.Decimal
	TotalValue  decimal.Decimal
}

// StockLedgerRepository define el puerto de persistencia del libro de stock.
// El libro es append-only: no hay Update ni Delete.
type StockLedgerRepository interface {
	Create(entry *entity.StockLedgerEntry) error
	// List devuelve la página de asientos (más recientes primero) y el total sin paginar.
	List(tenantID string, filter LedgerEntryFilter) ([]*MovementRecord, int, error)
	SummaryByVoucherType(tenantID string, from, to *time.Time) ([]VoucherTypeSummary, error)
	// ListByProductAsc devuelve los asientos de un producto en orden de posteo ascendente,
	// para reconstruir el saldo corrido reproduciendo el libro.
	ListByProductAsc(tenantID, productID string, limit int) ([]*MovementRecord, error)
}
