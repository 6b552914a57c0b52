package entity

import "time"

// Batch es un lote de un producto (tenant, producto, número de lote).
// Se auto-crea en la primera entrada (RECEIPT) que referencia un lote desconocido;
// su identidad es inmutable una vez creada.
type Batch struct {
	ID        string
	TenantID  string
	ProductID string
	BatchNo   string
	CreatedAt time.Time
}
