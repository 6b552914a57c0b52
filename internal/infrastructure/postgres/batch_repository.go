package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de lotes sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// GetByBatchNo resuelve el lote por número; nil si no existe.
func (r *BatchRepo) GetByBatchNo(tenantID, productID, batchNo string) (*entity.Batch, error) {
	query := `
		SELECT id, tenant_id, product_id, batch_no, created_at
		FROM batches
		WHERE tenant_id = $1 AND product_id = $2 AND batch_no = $3`
	var b entity.Batch
	err := r.q.QueryRow(context.Background(), query, tenantID, productID, batchNo).Scan(
		&b.ID, &b.TenantID, &b.ProductID, &b.BatchNo, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, tenant_id, product_id, batch_no, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.TenantID, batch.ProductID, batch.BatchNo, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}
