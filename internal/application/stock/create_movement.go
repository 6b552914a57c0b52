package stock

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

// CreateMovementUseCase registra movimientos de stock (RECEIPT, ISSUE, TRANSFER,
// ADJUSTMENT) de forma transaccional: resuelve códigos, toma el stock lock por
// (tenant, bodega, producto), aplica el guard de stock negativo, crea los asientos
// del libro, actualiza saldos por bodega y por bin, y escribe auditoría. Todo dentro
// de una sola transacción: cualquier falla revierte el request completo.
type CreateMovementUseCase struct {
	txRunner       TxRunner
	maxSeqAttempts int
	log            *logger.Logger
}

// NewCreateMovementUseCase construye el caso de uso.
func NewCreateMovementUseCase(txRunner TxRunner, maxSeqAttempts int, log *logger.Logger) *CreateMovementUseCase {
	return &CreateMovementUseCase{txRunner: txRunner, maxSeqAttempts: maxSeqAttempts, log: log}
}

// movementScope contexto compartido por todas las líneas de un request.
type movementScope struct {
	tenantID     string
	userID       string
	movementType string
	voucherType  string
	voucherNo    string
	postingDate  time.Time
	now          time.Time
	warehouse    *entity.Warehouse
	toWarehouse  *entity.Warehouse // solo TRANSFER
}

// CreateMovement valida el request, abre la transacción y procesa cada línea.
// Devuelve el recibo estructurado con el número de comprobante asignado.
func (uc *CreateMovementUseCase) CreateMovement(ctx context.Context, tenantID, userID string, in dto.CreateMovementRequest) (*dto.MovementReceipt, error) {
	if !entity.IsValidMovementType(in.MovementType) {
		return nil, domain.Invalidf("tipo de movimiento %q no soportado", in.MovementType)
	}
	if in.WarehouseCode == "" {
		return nil, domain.Invalidf("warehouse_code es obligatorio")
	}
	if in.MovementType == entity.MovementTypeTRANSFER && in.ToWarehouseCode == "" {
		return nil, domain.Invalidf("to_warehouse_code es obligatorio para TRANSFER")
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalidf("el movimiento requiere al menos una línea")
	}
	for _, line := range in.Items {
		if line.ItemCode == "" {
			return nil, domain.Invalidf("item_code es obligatorio en cada línea")
		}
		if line.Quantity.IsZero() {
			return nil, domain.Invalidf("la cantidad de %q no puede ser cero", line.ItemCode)
		}
		// Solo ADJUSTMENT acepta cantidad con signo; el resto recibe magnitud positiva.
		if in.MovementType != entity.MovementTypeADJUSTMENT && line.Quantity.IsNegative() {
			return nil, domain.Invalidf("la cantidad de %q debe ser positiva", line.ItemCode)
		}
		if line.Rate != nil && line.Rate.IsNegative() {
			return nil, domain.Invalidf("la tasa de %q no puede ser negativa", line.ItemCode)
		}
	}
	postingDate, err := parsePostingDate(in.PostingDate)
	if err != nil {
		return nil, err
	}

	var receipt *dto.MovementReceipt
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		sc := movementScope{
			tenantID:     tenantID,
			userID:       userID,
			movementType: in.MovementType,
			voucherType:  entity.VoucherTypeFor(in.MovementType),
			postingDate:  postingDate,
			now:          time.Now(),
		}

		sc.warehouse, err = repos.Warehouses.GetByCode(tenantID, in.WarehouseCode)
		if err != nil {
			return err
		}
		if sc.warehouse == nil {
			return domain.Invalidf("bodega %q no existe", in.WarehouseCode)
		}
		if in.MovementType == entity.MovementTypeTRANSFER {
			sc.toWarehouse, err = repos.Warehouses.GetByCode(tenantID, in.ToWarehouseCode)
			if err != nil {
				return err
			}
			if sc.toWarehouse == nil {
				return domain.Invalidf("bodega destino %q no existe", in.ToWarehouseCode)
			}
		}

		settings, err := repos.Settings.Get(tenantID)
		if err != nil {
			return err
		}
		guard := NegativeStockGuard{AllowNegative: settings != nil && settings.AllowNegativeStock}

		sequencer := NewVoucherSequencer(repos.Postings, uc.maxSeqAttempts)
		sc.voucherNo, err = sequencer.Next(tenantID, in.MovementType, postingDate)
		if err != nil {
			return err
		}

		summaries := make([]dto.MovementLineSummary, 0, len(in.Items))
		entries := 0
		for _, line := range in.Items {
			n, summary, err := uc.processLine(repos, guard, sc, line)
			if err != nil {
				return err
			}
			entries += n
			summaries = append(summaries, summary)
		}

		if err := uc.writeAudit(repos, sc, in, summaries); err != nil {
			return err
		}

		receipt = &dto.MovementReceipt{
			VoucherNo:    sc.voucherNo,
			VoucherType:  sc.voucherType,
			MovementType: sc.movementType,
			PostingDate:  sc.postingDate.Format("2006-01-02"),
			Warehouse:    sc.warehouse.Code,
			Items:        summaries,
			Entries:      entries,
		}
		if sc.toWarehouse != nil {
			receipt.ToWarehouse = sc.toWarehouse.Code
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrInsufficientStock) {
			uc.log.Error().Err(err).
				Str("tenant_id", tenantID).
				Str("movement_type", in.MovementType).
				Str("warehouse_code", in.WarehouseCode).
				Msg("movimiento de stock falló")
		}
		return nil, err
	}
	return receipt, nil
}

// processLine ejecuta la secuencia crítica de una línea: lock → guard → asiento(s) → saldos.
// Devuelve cuántos asientos creó (1, o 2 para TRANSFER) y el resumen de la línea.
func (uc *CreateMovementUseCase) processLine(repos TxRepos, guard NegativeStockGuard, sc movementScope, line dto.MovementLineRequest) (int, dto.MovementLineSummary, error) {
	var summary dto.MovementLineSummary

	product, err := repos.Products.GetBySKU(sc.tenantID, line.ItemCode)
	if err != nil {
		return 0, summary, err
	}
	if product == nil {
		return 0, summary, domain.Invalidf("producto %q no existe", line.ItemCode)
	}
	if line.BatchNo != "" && !product.TrackBatches {
		return 0, summary, domain.Invalidf("producto %q no maneja lotes", line.ItemCode)
	}
	if line.SerialNo != "" && !product.TrackSerials {
		return 0, summary, domain.Invalidf("producto %q no maneja seriales", line.ItemCode)
	}

	batch, err := uc.resolveBatch(repos, sc, product, line.BatchNo)
	if err != nil {
		return 0, summary, err
	}

	srcLoc, err := resolveLocation(repos, sc.tenantID, sc.warehouse, line.LocationCode)
	if err != nil {
		return 0, summary, err
	}
	// La ubicación destino se resuelve en la bodega destino para TRANSFER,
	// y en la bodega origen para el resto de los tipos.
	destWh := sc.warehouse
	if sc.toWarehouse != nil {
		destWh = sc.toWarehouse
	}
	dstLoc, err := resolveLocation(repos, sc.tenantID, destWh, line.ToLocationCode)
	if err != nil {
		return 0, summary, err
	}

	rate := decimal.Zero
	if line.Rate != nil {
		rate = *line.Rate
	}
	summary = dto.MovementLineSummary{
		ItemCode: product.SKU,
		ItemName: product.Name,
		Quantity: line.Quantity,
		Rate:     rate,
		BatchNo:  line.BatchNo,
	}

	if sc.movementType == entity.MovementTypeTRANSFER {
		n, err := uc.processTransferLine(repos, guard, sc, product, batch, srcLoc, dstLoc, line.Quantity, rate, line.SerialNo)
		return n, summary, err
	}

	// Convención de signos: RECEIPT suma, ISSUE resta, ADJUSTMENT usa el signo del caller.
	delta := line.Quantity
	if sc.movementType == entity.MovementTypeISSUE {
		delta = line.Quantity.Neg()
	}

	if err := repos.Locker.Acquire(sc.tenantID, sc.warehouse.ID, product.ID); err != nil {
		return 0, summary, err
	}
	// El guard lee los saldos después de tener el lock: sin esto habría una carrera
	// de lost-update entre el chequeo de disponibilidad y la escritura del saldo.
	if delta.IsNegative() {
		bal, err := repos.Balances.GetWarehouseBalance(sc.tenantID, product.ID, sc.warehouse.ID)
		if err != nil {
			return 0, summary, err
		}
		if err := guard.CheckWarehouse(product.SKU, sc.warehouse.Code, bal, delta); err != nil {
			return 0, summary, err
		}
		if srcLoc != nil {
			binBal, err := repos.Balances.GetBinBalance(sc.tenantID, product.ID, sc.warehouse.ID, srcLoc.ID)
			if err != nil {
				return 0, summary, err
			}
			if err := guard.CheckBin(product.SKU, sc.warehouse.Code, srcLoc.Code, binBal, delta); err != nil {
				return 0, summary, err
			}
		}
	}

	entry := uc.buildEntry(sc, product, sc.warehouse, srcLoc, batch, line.SerialNo, delta, rate)
	if err := repos.Ledger.Create(entry); err != nil {
		return 0, summary, err
	}
	if err := repos.Balances.ApplyWarehouseDelta(sc.tenantID, product.ID, sc.warehouse.ID, delta); err != nil {
		return 0, summary, err
	}
	if srcLoc != nil {
		if err := repos.Balances.ApplyBinDelta(sc.tenantID, product.ID, sc.warehouse.ID, srcLoc.ID, delta); err != nil {
			return 0, summary, err
		}
	}
	return 1, summary, nil
}

// processTransferLine crea los dos asientos de un traslado (negativo en origen,
// positivo espejo en destino, mismo comprobante) y actualiza saldos en ambas puntas.
// Los locks se toman en orden fijo origen → destino antes de leer cualquier saldo,
// para que dos traslados en sentidos opuestos no se bloqueen mutuamente.
func (uc *CreateMovementUseCase) processTransferLine(repos TxRepos, guard NegativeStockGuard, sc movementScope, product *entity.Product, batch *entity.Batch, srcLoc, dstLoc *entity.Location, qty decimal.Decimal, rate decimal.Decimal, serialNo string) (int, error) {
	if err := repos.Locker.Acquire(sc.tenantID, sc.warehouse.ID, product.ID); err != nil {
		return 0, err
	}
	if err := repos.Locker.Acquire(sc.tenantID, sc.toWarehouse.ID, product.ID); err != nil {
		return 0, err
	}

	outDelta := qty.Neg()
	bal, err := repos.Balances.GetWarehouseBalance(sc.tenantID, product.ID, sc.warehouse.ID)
	if err != nil {
		return 0, err
	}
	if err := guard.CheckWarehouse(product.SKU, sc.warehouse.Code, bal, outDelta); err != nil {
		return 0, err
	}
	if srcLoc != nil {
		binBal, err := repos.Balances.GetBinBalance(sc.tenantID, product.ID, sc.warehouse.ID, srcLoc.ID)
		if err != nil {
			return 0, err
		}
		if err := guard.CheckBin(product.SKU, sc.warehouse.Code, srcLoc.Code, binBal, outDelta); err != nil {
			return 0, err
		}
	}

	outEntry := uc.buildEntry(sc, product, sc.warehouse, srcLoc, batch, serialNo, outDelta, rate)
	inEntry := uc.buildEntry(sc, product, sc.toWarehouse, dstLoc, batch, serialNo, qty, rate)
	if err := repos.Ledger.Create(outEntry); err != nil {
		return 0, err
	}
	if err := repos.Ledger.Create(inEntry); err != nil {
		return 0, err
	}

	if err := repos.Balances.ApplyWarehouseDelta(sc.tenantID, product.ID, sc.warehouse.ID, outDelta); err != nil {
		return 0, err
	}
	if srcLoc != nil {
		if err := repos.Balances.ApplyBinDelta(sc.tenantID, product.ID, sc.warehouse.ID, srcLoc.ID, outDelta); err != nil {
			return 0, err
		}
	}
	if err := repos.Balances.ApplyWarehouseDelta(sc.tenantID, product.ID, sc.toWarehouse.ID, qty); err != nil {
		return 0, err
	}
	// El bin destino se actualiza igual que el origen: las dos piernas del traslado
	// mantienen la invariante de suma también a nivel de ubicación.
	if dstLoc != nil {
		if err := repos.Balances.ApplyBinDelta(sc.tenantID, product.ID, sc.toWarehouse.ID, dstLoc.ID, qty); err != nil {
			return 0, err
		}
	}
	return 2, nil
}

// resolveBatch resuelve el lote de la línea. En RECEIPT un lote desconocido se
// auto-crea; en cualquier otro tipo es error de validación.
func (uc *CreateMovementUseCase) resolveBatch(repos TxRepos, sc movementScope, product *entity.Product, batchNo string) (*entity.Batch, error) {
	if batchNo == "" {
		return nil, nil
	}
	batch, err := repos.Batches.GetByBatchNo(sc.tenantID, product.ID, batchNo)
	if err != nil {
		return nil, err
	}
	if batch != nil {
		return batch, nil
	}
	if sc.movementType != entity.MovementTypeRECEIPT {
		return nil, domain.Invalidf("lote %q no existe para el producto %q", batchNo, product.SKU)
	}
	batch = &entity.Batch{
		ID:        uuid.New().String(),
		TenantID:  sc.tenantID,
		ProductID: product.ID,
		BatchNo:   batchNo,
		CreatedAt: sc.now,
	}
	if err := repos.Batches.Create(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// resolveLocation resuelve un código de ubicación dentro de la bodega dada.
// Código vacío devuelve nil sin error.
func resolveLocation(repos TxRepos, tenantID string, warehouse *entity.Warehouse, code string) (*entity.Location, error) {
	if code == "" {
		return nil, nil
	}
	loc, err := repos.Locations.GetByCode(tenantID, warehouse.ID, code)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.Invalidf("ubicación %q no existe en la bodega %q", code, warehouse.Code)
	}
	return loc, nil
}

// buildEntry construye un asiento del libro con el valor de stock ya calculado
// (cantidad con signo por tasa, para que el neto cierre).
func (uc *CreateMovementUseCase) buildEntry(sc movementScope, product *entity.Product, warehouse *entity.Warehouse, loc *entity.Location, batch *entity.Batch, serialNo string, qty, rate decimal.Decimal) *entity.StockLedgerEntry {
	entry := &entity.StockLedgerEntry{
		ID:             uuid.New().String(),
		TenantID:       sc.tenantID,
		PostingTS:      sc.now,
		PostingDate:    sc.postingDate,
		ProductID:      product.ID,
		WarehouseID:    warehouse.ID,
		Qty:            qty,
		Rate:           rate,
		StockValueDiff: qty.Mul(rate),
		VoucherType:    sc.voucherType,
		VoucherNo:      sc.voucherNo,
		CreatedAt:      sc.now,
		CreatedBy:      sc.userID,
	}
	if loc != nil {
		entry.LocationID = &loc.ID
	}
	if batch != nil {
		entry.BatchID = &batch.ID
	}
	if serialNo != "" {
		entry.SerialNo = &serialNo
	}
	return entry
}

// writeAudit escribe un único registro de auditoría con el request completo.
func (uc *CreateMovementUseCase) writeAudit(repos TxRepos, sc movementScope, in dto.CreateMovementRequest, summaries []dto.MovementLineSummary) error {
	detail, err := json.Marshal(map[string]any{
		"movement_type": sc.movementType,
		"voucher_no":    sc.voucherNo,
		"warehouse":     sc.warehouse.Code,
		"to_warehouse":  in.ToWarehouseCode,
		"posting_date":  sc.postingDate.Format("2006-01-02"),
		"reference":     in.Reference,
		"remarks":       in.Remarks,
		"items":         summaries,
	})
	if err != nil {
		return err
	}
	return repos.Audit.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		TenantID:  sc.tenantID,
		UserID:    sc.userID,
		Action:    "stock_movement",
		Detail:    detail,
		CreatedAt: sc.now,
	})
}

// parsePostingDate valida la fecha de posteo: no futura y no más de un año atrás.
// Vacía = ahora.
func parsePostingDate(s string) (time.Time, error) {
	now := time.Now()
	if s == "" {
		return now, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.Invalidf("posting_date %q inválida (formato 2006-01-02)", s)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return time.Time{}, domain.Invalidf("posting_date %q es futura", s)
	}
	if d.Before(today.AddDate(-1, 0, 0)) {
		return time.Time{}, domain.Invalidf("posting_date %q tiene más de un año", s)
	}
	return d, nil
}
