package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockPostingRepository = (*StockPostingRepo)(nil)

// StockPostingRepo implementación de la tabla de reclamos de numeración.
// La UNIQUE (tenant_id, voucher_type, voucher_no) es la cerca que convierte una
// carrera de numeración en un error detectable en lugar de un duplicado.
type StockPostingRepo struct {
	q Querier
}

// NewStockPostingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockPostingRepository(q Querier) *StockPostingRepo {
	return &StockPostingRepo{q: q}
}

// MaxSequence lee el número reclamado más alto del scope (tenant, tipo, prefijo)
// ordenando descendente y parseando el sufijo de 5 dígitos. 0 si no hay ninguno.
func (r *StockPostingRepo) MaxSequence(tenantID, voucherType, prefix string) (int, error) {
	query := `
		SELECT voucher_no FROM stock_postings
		WHERE tenant_id = $1 AND voucher_type = $2 AND voucher_no LIKE $3
		ORDER BY voucher_no DESC LIMIT 1`
	var voucherNo string
	err := r.q.QueryRow(context.Background(), query, tenantID, voucherType, prefix+"-%").Scan(&voucherNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("max sequence: %w", err)
	}
	seqStr := strings.TrimPrefix(voucherNo, prefix+"-")
	seq, err := strconv.Atoi(seqStr)
	if err != nil {
		return 0, fmt.Errorf("voucher_no %q con sufijo no numérico: %w", voucherNo, err)
	}
	return seq, nil
}

// Claim inserta el reclamo; domain.ErrDuplicate si otra transacción ganó el número.
func (r *StockPostingRepo) Claim(posting *entity.StockPosting) error {
	query := `
		INSERT INTO stock_postings (id, tenant_id, voucher_type, voucher_no, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		posting.ID, posting.TenantID, posting.VoucherType, posting.VoucherNo,
		posting.Status, posting.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("claim voucher number: %w", err)
	}
	return nil
}
