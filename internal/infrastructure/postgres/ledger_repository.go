package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo implementación del libro de stock sobre PostgreSQL (usable con pool o tx).
// El libro es append-only: este repo solo inserta y lee.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Create persiste un asiento del libro.
func (r *StockLedgerRepo) Create(entry *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger_entries
			(id, tenant_id, posting_ts, posting_date, product_id, warehouse_id, location_id,
			 batch_id, serial_no, qty, rate, stock_value_diff, voucher_type, voucher_no, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	createdBy := (*string)(nil)
	if entry.CreatedBy != "" {
		createdBy = &entry.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.TenantID, entry.PostingTS, entry.PostingDate, entry.ProductID,
		entry.WarehouseID, entry.LocationID, entry.BatchID, entry.SerialNo,
		entry.Qty, entry.Rate, entry.StockValueDiff, entry.VoucherType, entry.VoucherNo,
		entry.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

const movementRecordColumns = `
	e.id, e.posting_ts, e.posting_date, p.sku, p.name, w.code, l.code, b.batch_no,
	e.serial_no, e.qty, e.rate, e.stock_value_diff, e.voucher_type, e.voucher_no,
	COALESCE(e.created_by, '')`

const movementRecordJoins = `
	FROM stock_ledger_entries e
	JOIN products p ON p.id = e.product_id
	JOIN warehouses w ON w.id = e.warehouse_id
	LEFT JOIN locations l ON l.id = e.location_id
	LEFT JOIN batches b ON b.id = e.batch_id`

// List devuelve la página de asientos (más recientes primero) y el total sin paginar.
func (r *StockLedgerRepo) List(tenantID string, f repository.LedgerEntryFilter) ([]*repository.MovementRecord, int, error) {
	where := ` WHERE e.tenant_id = $1`
	args := []any{tenantID}
	pos := 2
	if f.VoucherType != nil {
		where += fmt.Sprintf(" AND e.voucher_type = $%d", pos)
		args = append(args, *f.VoucherType)
		pos++
	}
	if f.WarehouseCode != nil {
		where += fmt.Sprintf(" AND w.code = $%d", pos)
		args = append(args, *f.WarehouseCode)
		pos++
	}
	if f.SKU != nil {
		where += fmt.Sprintf(" AND p.sku = $%d", pos)
		args = append(args, *f.SKU)
		pos++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND e.posting_date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND e.posting_date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}

	var total int
	countQuery := `SELECT COUNT(*)` + movementRecordJoins + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	query := `SELECT` + movementRecordColumns + movementRecordJoins + where +
		fmt.Sprintf(" ORDER BY e.posting_ts DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var list []*repository.MovementRecord
	for rows.Next() {
		rec, err := scanMovementRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, rec)
	}
	return list, total, rows.Err()
}

// SummaryByVoucherType agrega conteo, cantidad total y valor total por tipo de
// comprobante sobre un rango de fechas opcional.
func (r *StockLedgerRepo) SummaryByVoucherType(tenantID string, from, to *time.Time) ([]repository.VoucherTypeSummary, error) {
	query := `
		SELECT voucher_type, COUNT(*), COALESCE(SUM(qty), 0), COALESCE(SUM(stock_value_diff), 0)
		FROM stock_ledger_entries WHERE tenant_id = $1`
	args := []any{tenantID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND posting_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND posting_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " GROUP BY voucher_type ORDER BY voucher_type"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("summary by voucher type: %w", err)
	}
	defer rows.Close()

	var list []repository.VoucherTypeSummary
	for rows.Next() {
		var s repository.VoucherTypeSummary
		if err := rows.Scan(&s.VoucherType, &s.Entries, &s.TotalQty, &s.TotalValue); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListByProductAsc devuelve los asientos de un producto en orden de posteo ascendente.
func (r *StockLedgerRepo) ListByProductAsc(tenantID, productID string, limit int) ([]*repository.MovementRecord, error) {
	query := `SELECT` + movementRecordColumns + movementRecordJoins + `
		WHERE e.tenant_id = $1 AND e.product_id = $2
		ORDER BY e.posting_ts ASC LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()

	var list []*repository.MovementRecord
	for rows.Next() {
		rec, err := scanMovementRecord(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovementRecord(row rowScanner) (*repository.MovementRecord, error) {
	var rec repository.MovementRecord
	if err := row.Scan(
		&rec.ID, &rec.PostingTS, &rec.PostingDate, &rec.SKU, &rec.ItemName,
		&rec.WarehouseCode, &rec.LocationCode, &rec.BatchNo, &rec.SerialNo,
		&rec.Qty, &rec.Rate, &rec.StockValueDiff, &rec.VoucherType, &rec.VoucherNo,
		&rec.CreatedBy,
	); err != nil {
		return nil, fmt.Errorf("scan ledger entry: %w", err)
	}
	return &rec, nil
}
