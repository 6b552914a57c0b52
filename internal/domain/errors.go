package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Los handlers HTTP los mapean a códigos de estado.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrSequencingConflict = errors.New("conflicto de numeración de comprobantes")
)

// Invalidf construye un error de validación con mensaje descriptivo que
// envuelve ErrInvalidInput, para que errors.Is siga funcionando en el boundary.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// Ámbito en el que el guard de stock negativo detectó el faltante.
const (
	InsufficientScopeWarehouse = "warehouse"
	InsufficientScopeBin       = "bin"
)

// InsufficientStockError lleva el detalle de un rechazo por stock insuficiente:
// cantidad disponible vs. requerida, a nivel bodega o bin. Envuelve ErrInsufficientStock.
type InsufficientStockError struct {
	Scope         string
	SKU           string
	WarehouseCode string
	LocationCode  string // vacío si Scope es warehouse
	Available     decimal.Decimal
	Required      decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	if e.Scope == InsufficientScopeBin {
		return fmt.Sprintf("stock insuficiente para %s en bodega %s ubicación %s: disponible %s, requerido %s",
			e.SKU, e.WarehouseCode, e.LocationCode, e.Available.String(), e.Required.String())
	}
	return fmt.Sprintf("stock insuficiente para %s en bodega %s: disponible %s, requerido %s",
		e.SKU, e.WarehouseCode, e.Available.String(), e.Required.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
