package entity

import "time"

// Location representa una ubicación (bin) dentro de una bodega.
// Code es único dentro de la bodega.
type Location struct {
	ID          string
	TenantID    string
	WarehouseID string
	Code        string
	Name        string
	CreatedAt   time.Time
}
