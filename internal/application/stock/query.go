package stock

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// LedgerQueryUseCase es el camino de lectura del libro de stock: listados,
// resúmenes y reconstrucción de saldo corrido. No toma locks ni muta estado;
// opera sobre repos atados al pool (read-committed es suficiente).
type LedgerQueryUseCase struct {
	ledger   repository.StockLedgerRepository
	products repository.ProductRepository
}

// NewLedgerQueryUseCase construye el caso de uso de consultas.
func NewLedgerQueryUseCase(ledger repository.StockLedgerRepository, products repository.ProductRepository) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{ledger: ledger, products: products}
}

// ListMovements lista asientos paginados, más recientes primero, con filtros
// por tipo de movimiento, bodega, producto y rango de fechas.
func (uc *LedgerQueryUseCase) ListMovements(tenantID string, f dto.MovementFilter) (*dto.MovementListResponse, error) {
	f.DefaultPage()

	filter := repository.LedgerEntryFilter{Limit: f.Limit, Offset: f.Offset}
	if f.MovementType != "" {
		if !entity.IsValidMovementType(f.MovementType) {
			return nil, domain.Invalidf("tipo de movimiento %q no soportado", f.MovementType)
		}
		vt := entity.VoucherTypeFor(f.MovementType)
		filter.VoucherType = &vt
	}
	if f.WarehouseCode != "" {
		filter.WarehouseCode = &f.WarehouseCode
	}
	if f.ItemCode != "" {
		filter.SKU = &f.ItemCode
	}
	var err error
	filter.From, filter.To, err = parseDateRange(f.From, f.To)
	if err != nil {
		return nil, err
	}

	records, total, err := uc.ledger.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.MovementDTO, 0, len(records))
	for _, r := range records {
		entries = append(entries, movementDTO(r))
	}
	return &dto.MovementListResponse{Entries: entries, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// GetSummary agrega el libro por tipo de comprobante (conteo, cantidad total,
// valor total) sobre un rango de fechas opcional.
func (uc *LedgerQueryUseCase) GetSummary(tenantID string, r dto.SummaryRange) (map[string]dto.VoucherTypeSummaryDTO, error) {
	from, to, err := parseDateRange(r.From, r.To)
	if err != nil {
		return nil, err
	}
	rows, err := uc.ledger.SummaryByVoucherType(tenantID, from, to)
	if err != nil {
		return nil, err
	}
	summary := make(map[string]dto.VoucherTypeSummaryDTO, len(rows))
	for _, row := range rows {
		summary[row.VoucherType] = dto.VoucherTypeSummaryDTO{
			Count:      row.Entries,
			TotalQty:   row.TotalQty,
			TotalValue: row.TotalValue,
		}
	}
	return summary, nil
}

// GetItemMovements devuelve el historial de un producto con el saldo corrido
// reconstruido reproduciendo los asientos del más antiguo al más reciente.
func (uc *LedgerQueryUseCase) GetItemMovements(tenantID, itemCode string, limit int) (*dto.ItemMovementsResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	product, err := uc.products.GetBySKU(tenantID, itemCode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	records, err := uc.ledger.ListByProductAsc(tenantID, product.ID, limit)
	if err != nil {
		return nil, err
	}

	movements := make([]dto.ItemMovementDTO, 0, len(records))
	running := decimal.Zero
	for _, r := range records {
		running = running.Add(r.Qty)
		movements = append(movements, dto.ItemMovementDTO{
			PostingDate:    r.PostingDate.Format("2006-01-02"),
			WarehouseCode:  r.WarehouseCode,
			Qty:            r.Qty,
			Rate:           r.Rate,
			VoucherType:    r.VoucherType,
			VoucherNo:      r.VoucherNo,
			RunningBalance: running,
		})
	}
	return &dto.ItemMovementsResponse{ItemCode: product.SKU, ItemName: product.Name, Movements: movements}, nil
}

func movementDTO(r *repository.MovementRecord) dto.MovementDTO {
	m := dto.MovementDTO{
		ID:             r.ID,
		PostingDate:    r.PostingDate.Format("2006-01-02"),
		ItemCode:       r.SKU,
		ItemName:       r.ItemName,
		WarehouseCode:  r.WarehouseCode,
		Qty:            r.Qty,
		Rate:           r.Rate,
		StockValueDiff: r.StockValueDiff,
		VoucherType:    r.VoucherType,
		VoucherNo:      r.VoucherNo,
	}
	if r.LocationCode != nil {
		m.LocationCode = *r.LocationCode
	}
	if r.BatchNo != nil {
		m.BatchNo = *r.BatchNo
	}
	if r.SerialNo != nil {
		m.SerialNo = *r.SerialNo
	}
	return m
}

// parseDateRange parsea fechas ISO opcionales; To se extiende al final del día
// para que el rango sea inclusivo.
func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		d, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, nil, domain.Invalidf("from %q inválida (formato 2006-01-02)", fromStr)
		}
		from = &d
	}
	if toStr != "" {
		d, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, nil, domain.Invalidf("to %q inválida (formato 2006-01-02)", toStr)
		}
		end := d.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
