package entity

import "time"

// Product representa un producto o SKU del inventario.
// SKU es el código único por tenant; TrackBatches/TrackSerials habilitan
// la trazabilidad por lote y por serial en los movimientos.
type Product struct {
	ID           string
	TenantID     string
	SKU          string
	Name         string
	Description  string
	UnitMeasure  string
	TrackBatches bool
	TrackSerials bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
