package entity

import "time"

// TenantSettings agrupa la política de inventario del tenant.
// AllowNegativeStock: si es false (el default cuando no hay fila), el guard de
// stock negativo rechaza cualquier movimiento que dejaría el saldo bajo cero.
type TenantSettings struct {
	TenantID           string
	AllowNegativeStock bool
	UpdatedAt          time.Time
}
