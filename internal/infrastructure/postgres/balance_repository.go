package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de los saldos materializados sobre PostgreSQL.
// Los deltas se aplican con upsert-increment en una sola sentencia: dos deltas
// concurrentes sobre la misma fila nunca se pierden, incluso sin el stock lock
// (los bins bajo una misma bodega no tienen lock individual).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// GetWarehouseBalance obtiene el saldo por bodega; saldo cero si la fila no existe.
func (r *BalanceRepo) GetWarehouseBalance(tenantID, productID, warehouseID string) (*entity.WarehouseBalance, error) {
	query := `
		SELECT tenant_id, product_id, warehouse_id, actual_qty, reserved_qty, updated_at
		FROM warehouse_balances
		WHERE tenant_id = $1 AND product_id = $2 AND warehouse_id = $3`
	var b entity.WarehouseBalance
	err := r.q.QueryRow(context.Background(), query, tenantID, productID, warehouseID).Scan(
		&b.TenantID, &b.ProductID, &b.WarehouseID, &b.ActualQty, &b.ReservedQty, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.WarehouseBalance{
				TenantID: tenantID, ProductID: productID, WarehouseID: warehouseID,
				ActualQty: decimal.Zero, ReservedQty: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get warehouse balance: %w", err)
	}
	return &b, nil
}

// ApplyWarehouseDelta incrementa atómicamente el saldo por bodega, creando la
// fila con actual_qty = delta y reserved_qty = 0 si no existe.
func (r *BalanceRepo) ApplyWarehouseDelta(tenantID, productID, warehouseID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO warehouse_balances (tenant_id, product_id, warehouse_id, actual_qty, reserved_qty, updated_at)
		VALUES ($1, $2, $3, $4, 0, now())
		ON CONFLICT (tenant_id, product_id, warehouse_id)
		DO UPDATE SET actual_qty = warehouse_balances.actual_qty + EXCLUDED.actual_qty, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, tenantID, productID, warehouseID, delta)
	if err != nil {
		return fmt.Errorf("apply warehouse delta: %w", err)
	}
	return nil
}

// GetBinBalance obtiene el saldo por bin; saldo cero si la fila no existe.
func (r *BalanceRepo) GetBinBalance(tenantID, productID, warehouseID, locationID string) (*entity.BinBalance, error) {
	query := `
		SELECT tenant_id, product_id, warehouse_id, location_id, actual_qty, reserved_qty, updated_at
		FROM bin_balances
		WHERE tenant_id = $1 AND product_id = $2 AND warehouse_id = $3 AND location_id = $4`
	var b entity.BinBalance
	err := r.q.QueryRow(context.Background(), query, tenantID, productID, warehouseID, locationID).Scan(
		&b.TenantID, &b.ProductID, &b.WarehouseID, &b.LocationID, &b.ActualQty, &b.ReservedQty, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.BinBalance{
				TenantID: tenantID, ProductID: productID, WarehouseID: warehouseID, LocationID: locationID,
				ActualQty: decimal.Zero, ReservedQty: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get bin balance: %w", err)
	}
	return &b, nil
}

// ApplyBinDelta incrementa atómicamente el saldo por bin, creando la fila si no existe.
func (r *BalanceRepo) ApplyBinDelta(tenantID, productID, warehouseID, locationID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO bin_balances (tenant_id, product_id, warehouse_id, location_id, actual_qty, reserved_qty, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, now())
		ON CONFLICT (tenant_id, product_id, warehouse_id, location_id)
		DO UPDATE SET actual_qty = bin_balances.actual_qty + EXCLUDED.actual_qty, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, tenantID, productID, warehouseID, locationID, delta)
	if err != nil {
		return fmt.Errorf("apply bin delta: %w", err)
	}
	return nil
}
