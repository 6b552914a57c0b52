package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia de lotes.
type BatchRepository interface {
	// GetByBatchNo devuelve nil (sin error) si el lote no existe.
	GetByBatchNo(tenantID, productID, batchNo string) (*entity.Batch, error)
	Create(batch *entity.Batch) error
}
