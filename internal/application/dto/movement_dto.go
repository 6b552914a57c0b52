package dto

import "github.com/shopspring/decimal"

// MovementLineRequest una línea de un movimiento de stock.
// Quantity es magnitud sin signo salvo para ADJUSTMENT, donde el caller da el signo.
type MovementLineRequest struct {
	ItemCode       string           `json:"item_code"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Rate           *decimal.Decimal `json:"rate,omitempty"`
	BatchNo        string           `json:"batch_no,omitempty"`
	SerialNo       string           `json:"serial_no,omitempty"`
	LocationCode   string           `json:"location_code,omitempty"`
	ToLocationCode string           `json:"to_location_code,omitempty"`
}

// CreateMovementRequest body para POST /api/stock/movements.
// ToWarehouseCode es obligatorio solo para TRANSFER. PostingDate es ISO (2006-01-02);
// vacío = hoy.
type CreateMovementRequest struct {
	MovementType    string               `json:"movement_type"`
	WarehouseCode   string               `json:"warehouse_code"`
	ToWarehouseCode string               `json:"to_warehouse_code,omitempty"`
	PostingDate     string               `json:"posting_date,omitempty"`
	Reference       string               `json:"reference,omitempty"`
	Remarks         string               `json:"remarks,omitempty"`
	Items           []MovementLineRequest `json:"items"`
}

// MovementLineSummary resumen de una línea procesada, para el recibo y la auditoría.
type MovementLineSummary struct {
	ItemCode string          `json:"item_code"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	BatchNo  string          `json:"batch_no,omitempty"`
}

// MovementReceipt recibo estructurado de un movimiento registrado.
type MovementReceipt struct {
	VoucherNo    string                `json:"voucher_no"`
	VoucherType  string                `json:"voucher_type"`
	MovementType string                `json:"movement_type"`
	PostingDate  string                `json:"posting_date"`
	Warehouse    string                `json:"warehouse"`
	ToWarehouse  string                `json:"to_warehouse,omitempty"`
	Items        []MovementLineSummary `json:"items"`
	Entries      int                   `json:"entries"`
}
