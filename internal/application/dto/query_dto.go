package dto

import "github.com/shopspring/decimal"

// MovementFilter query params para GET /api/stock/movements.
type MovementFilter struct {
	MovementType  string `query:"movement_type"`
	WarehouseCode string `query:"warehouse_code"`
	ItemCode      string `query:"item_code"`
	From          string `query:"from"` // ISO 2006-01-02 (inclusive)
	To            string `query:"to"`   // ISO 2006-01-02 (inclusive)
	PageRequest
}

// MovementDTO un asiento del libro en respuestas de listado.
type MovementDTO struct {
	ID             string          `json:"id"`
	PostingDate    string          `json:"posting_date"`
	ItemCode       string          `json:"item_code"`
	ItemName       string          `json:"item_name"`
	WarehouseCode  string          `json:"warehouse_code"`
	LocationCode   string          `json:"location_code,omitempty"`
	BatchNo        string          `json:"batch_no,omitempty"`
	SerialNo       string          `json:"serial_no,omitempty"`
	Qty            decimal.Decimal `json:"qty"`
	Rate           decimal.Decimal `json:"rate"`
	StockValueDiff decimal.Decimal `json:"stock_value_diff"`
	VoucherType    string          `json:"voucher_type"`
	VoucherNo      string          `json:"voucher_no"`
}

// MovementListResponse página de asientos (más recientes primero).
type MovementListResponse struct {
	Entries []MovementDTO `json:"entries"`
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}

// SummaryRange query params del resumen por tipo de comprobante.
type SummaryRange struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// VoucherTypeSummaryDTO agregado por tipo de comprobante.
type VoucherTypeSummaryDTO struct {
	Count      int             `json:"count"`
	TotalQty   decimal.Decimal `json:"total_qty"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ItemMovementDTO un asiento del historial de un producto, con saldo corrido.
type ItemMovementDTO struct {
	PostingDate    string          `json:"posting_date"`
	WarehouseCode  string          `json:"warehouse_code"`
	Qty            decimal.Decimal `json:"qty"`
	Rate           decimal.Decimal `json:"rate"`
	VoucherType    string          `json:"voucher_type"`
	VoucherNo      string          `json:"voucher_no"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// ItemMovementsResponse historial de movimientos de un producto,
// en orden de posteo ascendente (el saldo corrido se acumula en ese orden).
type ItemMovementsResponse struct {
	ItemCode  string            `json:"item_code"`
	ItemName  string            `json:"item_name"`
	Movements []ItemMovementDTO `json:"movements"`
}
