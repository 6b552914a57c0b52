package postgres

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"

	"github.com/jhoicas/Kardex-api/internal/application/stock"
)

var _ stock.StockLocker = (*StockLock)(nil)

// StockLock implementa el bloqueo por posición de stock con advisory locks de
// PostgreSQL. pg_advisory_xact_lock queda atado a la transacción: se libera solo
// al hacer commit o rollback, así el lock cubre exactamente la vida del movimiento.
// Debe construirse con la pgx.Tx del movimiento, nunca con el pool.
type StockLock struct {
	q Querier
}

// NewStockLock construye el lock sobre la transacción dada.
func NewStockLock(q Querier) *StockLock {
	return &StockLock{q: q}
}

// Acquire bloquea (tenant, bodega, producto) hasta el fin de la transacción.
// Dos movimientos sobre la misma clave quedan totalmente serializados; claves
// disjuntas avanzan en paralelo. Reentrante dentro de la misma transacción.
func (l *StockLock) Acquire(tenantID, warehouseID, productID string) error {
	key := lockKey(tenantID, warehouseID, productID)
	if _, err := l.q.Exec(context.Background(), `SELECT pg_advisory_xact_lock($1)`, key); err != nil {
		return fmt.Errorf("acquire stock lock: %w", err)
	}
	return nil
}

// lockKey deriva la clave de 64 bits del advisory lock con fnv-64a sobre
// tenant|bodega|producto. Determinística: la misma posición siempre produce
// la misma clave en cualquier instancia.
func lockKey(tenantID, warehouseID, productID string) int64 {
	h := fnv.New64a()
	_, _ = io.WriteString(h, tenantID)
	_, _ = io.WriteString(h, "|")
	_, _ = io.WriteString(h, warehouseID)
	_, _ = io.WriteString(h, "|")
	_, _ = io.WriteString(h, productID)
	return int64(h.Sum64())
}
