package entity

import "time"

// Estado del registro de posteo. En el flujo core siempre queda en draft:
// la fila existe como cerca de unicidad para la numeración, no como documento.
const PostingStatusDraft = "draft"

// StockPosting es el registro de reclamo de un número de comprobante.
// La restricción UNIQUE (tenant_id, voucher_type, voucher_no) es lo que hace
// detectable y recuperable una carrera de numeración entre transacciones.
type StockPosting struct {
	ID          string
	TenantID    string
	VoucherType string
	VoucherNo   string
	Status      string
	CreatedAt   time.Time
}
