package stock_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/stock"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos; fakeTxRunner simula la transacción con
// snapshot/restore, así los tests pueden verificar el todo-o-nada de un
// movimiento fallido sin una base real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products    map[string]*entity.Product        // tenant|sku
	warehouses  map[string]*entity.Warehouse      // tenant|code
	locations   map[string]*entity.Location       // tenant|warehouseID|code
	batches     map[string]*entity.Batch          // tenant|productID|batchNo
	settings    map[string]*entity.TenantSettings // tenant
	postings    map[string]*entity.StockPosting   // tenant|voucherType|voucherNo
	ledger      []*entity.StockLedgerEntry
	whBalances  map[string]entity.WarehouseBalance // tenant|product|warehouse
	binBalances map[string]entity.BinBalance       // tenant|product|warehouse|location
	audit       []*entity.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		products:    make(map[string]*entity.Product),
		warehouses:  make(map[string]*entity.Warehouse),
		locations:   make(map[string]*entity.Location),
		batches:     make(map[string]*entity.Batch),
		settings:    make(map[string]*entity.TenantSettings),
		postings:    make(map[string]*entity.StockPosting),
		whBalances:  make(map[string]entity.WarehouseBalance),
		binBalances: make(map[string]entity.BinBalance),
	}
}

func key(parts ...string) string { return strings.Join(parts, "|") }

// snapshot copia el estado para poder restaurarlo en un rollback simulado.
// Las entidades son append-only en los tests, basta clonar mapas y slices.
func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.batches {
		c.batches[k] = v
	}
	for k, v := range s.settings {
		c.settings[k] = v
	}
	for k, v := range s.postings {
		c.postings[k] = v
	}
	for k, v := range s.whBalances {
		c.whBalances[k] = v
	}
	for k, v := range s.binBalances {
		c.binBalances[k] = v
	}
	c.ledger = append([]*entity.StockLedgerEntry(nil), s.ledger...)
	c.audit = append([]*entity.AuditLog(nil), s.audit...)
	return c
}

func (s *memStore) restore(from *memStore) { *s = *from }

func (s *memStore) productByID(id string) *entity.Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *memStore) warehouseByID(id string) *entity.Warehouse {
	for _, w := range s.warehouses {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (s *memStore) locationByID(id string) *entity.Location {
	for _, l := range s.locations {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (s *memStore) batchByID(id string) *entity.Batch {
	for _, b := range s.batches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// ── Repos sobre memStore ─────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.products[key(p.TenantID, p.SKU)] = p
	return nil
}
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.productByID(id), nil
}
func (r *memProductRepo) GetBySKU(tenantID, sku string) (*entity.Product, error) {
	return r.s.products[key(tenantID, sku)], nil
}
func (r *memProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.TenantID == tenantID {
			list = append(list, p)
		}
	}
	return list, nil
}

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	r.s.warehouses[key(w.TenantID, w.Code)] = w
	return nil
}
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.s.warehouseByID(id), nil
}
func (r *memWarehouseRepo) GetByCode(tenantID, code string) (*entity.Warehouse, error) {
	return r.s.warehouses[key(tenantID, code)], nil
}
func (r *memWarehouseRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.TenantID == tenantID {
			list = append(list, w)
		}
	}
	return list, nil
}

type memLocationRepo struct{ s *memStore }

func (r *memLocationRepo) Create(l *entity.Location) error {
	r.s.locations[key(l.TenantID, l.WarehouseID, l.Code)] = l
	return nil
}
func (r *memLocationRepo) GetByCode(tenantID, warehouseID, code string) (*entity.Location, error) {
	return r.s.locations[key(tenantID, warehouseID, code)], nil
}
func (r *memLocationRepo) ListByWarehouse(tenantID, warehouseID string) ([]*entity.Location, error) {
	var list []*entity.Location
	for _, l := range r.s.locations {
		if l.TenantID == tenantID && l.WarehouseID == warehouseID {
			list = append(list, l)
		}
	}
	return list, nil
}

type memBatchRepo struct{ s *memStore }

func (r *memBatchRepo) GetByBatchNo(tenantID, productID, batchNo string) (*entity.Batch, error) {
	return r.s.batches[key(tenantID, productID, batchNo)], nil
}
func (r *memBatchRepo) Create(b *entity.Batch) error {
	r.s.batches[key(b.TenantID, b.ProductID, b.BatchNo)] = b
	return nil
}

type memSettingsRepo struct{ s *memStore }

func (r *memSettingsRepo) Get(tenantID string) (*entity.TenantSettings, error) {
	return r.s.settings[tenantID], nil
}

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(rec *entity.AuditLog) error {
	r.s.audit = append(r.s.audit, rec)
	return nil
}

type memPostingRepo struct{ s *memStore }

func (r *memPostingRepo) MaxSequence(tenantID, voucherType, prefix string) (int, error) {
	maxSeq := 0
	for _, p := range r.s.postings {
		if p.TenantID != tenantID || p.VoucherType != voucherType {
			continue
		}
		if !strings.HasPrefix(p.VoucherNo, prefix+"-") {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(p.VoucherNo, prefix+"-"))
		if err != nil {
			return 0, err
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq, nil
}
func (r *memPostingRepo) Claim(p *entity.StockPosting) error {
	k := key(p.TenantID, p.VoucherType, p.VoucherNo)
	if _, ok := r.s.postings[k]; ok {
		return domain.ErrDuplicate
	}
	r.s.postings[k] = p
	return nil
}

type memBalanceRepo struct{ s *memStore }

func (r *memBalanceRepo) GetWarehouseBalance(tenantID, productID, warehouseID string) (*entity.WarehouseBalance, error) {
	if b, ok := r.s.whBalances[key(tenantID, productID, warehouseID)]; ok {
		return &b, nil
	}
	return &entity.WarehouseBalance{
		TenantID: tenantID, ProductID: productID, WarehouseID: warehouseID,
		ActualQty: decimal.Zero, ReservedQty: decimal.Zero,
	}, nil
}
func (r *memBalanceRepo) ApplyWarehouseDelta(tenantID, productID, warehouseID string, delta decimal.Decimal) error {
	k := key(tenantID, productID, warehouseID)
	b, ok := r.s.whBalances[k]
	if !ok {
		b = entity.WarehouseBalance{
			TenantID: tenantID, ProductID: productID, WarehouseID: warehouseID,
			ActualQty: decimal.Zero, ReservedQty: decimal.Zero,
		}
	}
	b.ActualQty = b.ActualQty.Add(delta)
	b.UpdatedAt = time.Now()
	r.s.whBalances[k] = b
	return nil
}
func (r *memBalanceRepo) GetBinBalance(tenantID, productID, warehouseID, locationID string) (*entity.BinBalance, error) {
	if b, ok := r.s.binBalances[key(tenantID, productID, warehouseID, locationID)]; ok {
		return &b, nil
	}
	return &entity.BinBalance{
		TenantID: tenantID, ProductID: productID, WarehouseID: warehouseID, LocationID: locationID,
		ActualQty: decimal.Zero, ReservedQty: decimal.Zero,
	}, nil
}
func (r *memBalanceRepo) ApplyBinDelta(tenantID, productID, warehouseID, locationID string, delta decimal.Decimal) error {
	k := key(tenantID, productID, warehouseID, locationID)
	b, ok := r.s.binBalances[k]
	if !ok {
		b = entity.BinBalance{
			TenantID: tenantID, ProductID: productID, WarehouseID: warehouseID, LocationID: locationID,
			ActualQty: decimal.Zero, ReservedQty: decimal.Zero,
		}
	}
	b.ActualQty = b.ActualQty.Add(delta)
	b.UpdatedAt = time.Now()
	r.s.binBalances[k] = b
	return nil
}

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(e *entity.StockLedgerEntry) error {
	r.s.ledger = append(r.s.ledger, e)
	return nil
}

func (r *memLedgerRepo) record(e *entity.StockLedgerEntry) *repository.MovementRecord {
	p := r.s.productByID(e.ProductID)
	w := r.s.warehouseByID(e.WarehouseID)
	rec := &repository.MovementRecord{
		ID:             e.ID,
		PostingTS:      e.PostingTS,
		PostingDate:    e.PostingDate,
		SKU:            p.SKU,
		ItemName:       p.Name,
		WarehouseCode:  w.Code,
		SerialNo:       e.SerialNo,
		Qty:            e.Qty,
		Rate:           e.Rate,
		StockValueDiff: e.StockValueDiff,
		VoucherType:    e.VoucherType,
		VoucherNo:      e.VoucherNo,
		CreatedBy:      e.CreatedBy,
	}
	if e.LocationID != nil {
		if l := r.s.locationByID(*e.LocationID); l != nil {
			rec.LocationCode = &l.Code
		}
	}
	if e.BatchID != nil {
		if b := r.s.batchByID(*e.BatchID); b != nil {
			rec.BatchNo = &b.BatchNo
		}
	}
	return rec
}

func (r *memLedgerRepo) matches(e *entity.StockLedgerEntry, tenantID string, f repository.LedgerEntryFilter) bool {
	if e.TenantID != tenantID {
		return false
	}
	if f.VoucherType != nil && e.VoucherType != *f.VoucherType {
		return false
	}
	if f.WarehouseCode != nil {
		w := r.s.warehouseByID(e.WarehouseID)
		if w == nil || w.Code != *f.WarehouseCode {
			return false
		}
	}
	if f.SKU != nil {
		p := r.s.productByID(e.ProductID)
		if p == nil || p.SKU != *f.SKU {
			return false
		}
	}
	if f.From != nil && e.PostingDate.Before(*f.From) {
		return false
	}
	if f.To != nil && e.PostingDate.After(*f.To) {
		return false
	}
	return true
}

func (r *memLedgerRepo) List(tenantID string, f repository.LedgerEntryFilter) ([]*repository.MovementRecord, int, error) {
	var all []*repository.MovementRecord
	for _, e := range r.s.ledger {
		if r.matches(e, tenantID, f) {
			all = append(all, r.record(e))
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].PostingTS.After(all[j].PostingTS) })
	total := len(all)
	if f.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, total, nil
}

func (r *memLedgerRepo) SummaryByVoucherType(tenantID string, from, to *time.Time) ([]repository.VoucherTypeSummary, error) {
	agg := make(map[string]*repository.VoucherTypeSummary)
	for _, e := range r.s.ledger {
		if e.TenantID != tenantID {
			continue
		}
		if from != nil && e.PostingDate.Before(*from) {
			continue
		}
		if to != nil && e.PostingDate.After(*to) {
			continue
		}
		s, ok := agg[e.VoucherType]
		if !ok {
			s = &repository.VoucherTypeSummary{VoucherType: e.VoucherType, TotalQty: decimal.Zero, TotalValue: decimal.Zero}
			agg[e.VoucherType] = s
		}
		s.Entries++
		s.TotalQty = s.TotalQty.Add(e.Qty)
		s.TotalValue = s.TotalValue.Add(e.StockValueDiff)
	}
	var list []repository.VoucherTypeSummary
	for _, s := range agg {
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].VoucherType < list[j].VoucherType })
	return list, nil
}

func (r *memLedgerRepo) ListByProductAsc(tenantID, productID string, limit int) ([]*repository.MovementRecord, error) {
	var list []*repository.MovementRecord
	for _, e := range r.s.ledger {
		if e.TenantID == tenantID && e.ProductID == productID {
			list = append(list, r.record(e))
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].PostingTS.Before(list[j].PostingTS) })
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// ── Locker y TxRunner ────────────────────────────────────────────────────────

// fakeLocker registra las claves adquiridas, en orden, para verificar que el
// lock se toma antes de leer saldos y en orden origen → destino en TRANSFER.
type fakeLocker struct {
	acquired []string
}

func (l *fakeLocker) Acquire(tenantID, warehouseID, productID string) error {
	l.acquired = append(l.acquired, fmt.Sprintf("%s|%s|%s", tenantID, warehouseID, productID))
	return nil
}

// fakeTxRunner simula la transacción: snapshot antes de fn, restore si falla.
type fakeTxRunner struct {
	store  *memStore
	locker *fakeLocker
}

func newFakeTxRunner(store *memStore) *fakeTxRunner {
	return &fakeTxRunner{store: store, locker: &fakeLocker{}}
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repos stock.TxRepos) error) error {
	snap := r.store.snapshot()
	repos := stock.TxRepos{
		Ledger:     &memLedgerRepo{s: r.store},
		Balances:   &memBalanceRepo{s: r.store},
		Postings:   &memPostingRepo{s: r.store},
		Batches:    &memBatchRepo{s: r.store},
		Products:   &memProductRepo{s: r.store},
		Warehouses: &memWarehouseRepo{s: r.store},
		Locations:  &memLocationRepo{s: r.store},
		Settings:   &memSettingsRepo{s: r.store},
		Audit:      &memAuditRepo{s: r.store},
		Locker:     r.locker,
	}
	if err := fn(repos); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
