package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
// Code es el código legible único por tenant con el que la resuelven los movimientos.
type Warehouse struct {
	ID        string
	TenantID  string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
