package stock

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// StockLocker es el puerto del bloqueo exclusivo por posición lógica de stock
// (tenant, bodega, producto). El lock vive hasta el fin de la transacción que
// lo adquirió (commit o rollback); claves distintas no se bloquean entre sí.
type StockLocker interface {
	Acquire(tenantID, warehouseID, productID string) error
}

// TxRepos agrupa los repositorios atados a la transacción del movimiento,
// más el lock de stock de esa misma transacción.
type TxRepos struct {
	Ledger     repository.StockLedgerRepository
	Balances   repository.BalanceRepository
	Postings   repository.StockPostingRepository
	Batches    repository.BatchRepository
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Locations  repository.LocationRepository
	Settings   repository.TenantSettingsRepository
	Audit      repository.AuditLogRepository
	Locker     StockLocker
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repos atados a esa tx.
// Si fn retorna error la transacción completa se revierte: ningún asiento ni saldo
// parcial queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
