package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/stock"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// newQueryFixture siembra movimientos reales vía el caso de uso de escritura,
// para que las consultas lean el mismo libro que produce el motor.
func newQueryFixture(t *testing.T) (*memStore, *stock.LedgerQueryUseCase, *stock.CreateMovementUseCase) {
	t.Helper()
	store, _, createUC := newFixture(t)
	queryUC := stock.NewLedgerQueryUseCase(&memLedgerRepo{s: store}, &memProductRepo{s: store})
	return store, queryUC, createUC
}

func TestListMovements_FiltraPorTipo(t *testing.T) {
	_, queryUC, createUC := newQueryFixture(t)
	receipt(t, createUC, "WH-MAIN", "WIDGET", "100", "5.00")
	_, err := createUC.CreateMovement(context.Background(), tenantA, userA, dto.CreateMovementRequest{
		MovementType:  entity.MovementTypeISSUE,
		WarehouseCode: "WH-MAIN",
		Items:         []dto.MovementLineRequest{{ItemCode: "WIDGET", Quantity: qty("30")}},
	})
	require.NoError(t, err)

	out, err := queryUC.ListMovements(tenantA, dto.MovementFilter{MovementType: entity.MovementTypeISSUE})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Entries, 1)
	assert.Equal(t, entity.VoucherTypeIssue, out.Entries[0].VoucherType)
	assert.True(t, out.Entries[0].Qty.Equal(qty("-30")))
}

func TestListMovements_TipoInvalido(t *testing.T) {
	_, queryUC, _ := newQueryFixture(t)
	_, err := queryUC.ListMovements(tenantA, dto.MovementFilter{MovementType: "TELEPORT"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestListMovements_Paginacion(t *testing.T) {
	_, queryUC, createUC := newQueryFixture(t)
	for i := 0; i < 5; i++ {
		receipt(t, createUC, "WH-MAIN", "WIDGET", "1", "1")
	}

	out, err := queryUC.ListMovements(tenantA, dto.MovementFilter{
		PageRequest: dto.PageRequest{Limit: 2, Offset: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Total, "el total es sin paginar")
	assert.Len(t, out.Entries, 2)
	assert.Equal(t, 2, out.Limit)
}

func TestListMovements_TenantAislado(t *testing.T) {
	_, queryUC, createUC := newQueryFixture(t)
	receipt(t, createUC, "WH-MAIN", "WIDGET", "10", "1")

	out, err := queryUC.ListMovements("otro-tenant", dto.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Total, "un tenant nunca ve asientos de otro")
	assert.Empty(t, out.Entries)
}

func TestGetSummary_AgregaPorTipoDeComprobante(t *testing.T) {
	_, queryUC, createUC := newQueryFixture(t)
	receipt(t, createUC, "WH-MAIN", "WIDGET", "100", "5.00")
	receipt(t, createUC, "WH-MAIN", "WIDGET", "50", "5.00")
	_, err := createUC.CreateMovement(context.Background(), tenantA, userA, dto.CreateMovementRequest{
		MovementType:  entity.MovementTypeISSUE,
		WarehouseCode: "WH-MAIN",
		Items:         []dto.MovementLineRequest{{ItemCode: "WIDGET", Quantity: qty("30")}},
	})
	require.NoError(t, err)

	summary, err := queryUC.GetSummary(tenantA, dto.SummaryRange{})
	require.NoError(t, err)

	receipts := summary[entity.VoucherTypeReceipt]
	assert.Equal(t, 2, receipts.Count)
	assert.True(t, receipts.TotalQty.Equal(qty("150")))
	assert.True(t, receipts.TotalValue.Equal(qty("750")))

	issues := summary[entity.VoucherTypeIssue]
	assert.Equal(t, 1, issues.Count)
	assert.True(t, issues.TotalQty.Equal(qty("-30")))
}

func TestGetItemMovements_SaldoCorrido(t *testing.T) {
	store, queryUC, createUC := newQueryFixture(t)
	receipt(t, createUC, "WH-MAIN", "WIDGET", "100", "5.00")
	_, err := createUC.CreateMovement(context.Background(), tenantA, userA, dto.CreateMovementRequest{
		MovementType:  entity.MovementTypeISSUE,
		WarehouseCode: "WH-MAIN",
		Items:         []dto.MovementLineRequest{{ItemCode: "WIDGET", Quantity: qty("30")}},
	})
	require.NoError(t, err)
	_, err = createUC.CreateMovement(context.Background(), tenantA, userA, dto.CreateMovementRequest{
		MovementType:    entity.MovementTypeTRANSFER,
		WarehouseCode:   "WH-MAIN",
		ToWarehouseCode: "WH-SEC",
		Items:           []dto.MovementLineRequest{{ItemCode: "WIDGET", Quantity: qty("20")}},
	})
	require.NoError(t, err)

	out, err := queryUC.GetItemMovements(tenantA, "WIDGET", 0)
	require.NoError(t, err)
	assert.Equal(t, "WIDGET", out.ItemCode)
	// 4 asientos: receipt, issue y las dos piernas del traslado.
	require.Len(t, out.Movements, 4)

	assert.True(t, out.Movements[0].RunningBalance.Equal(qty("100")))
	assert.True(t, out.Movements[1].RunningBalance.Equal(qty("70")))

	// El saldo corrido final debe coincidir con la suma de los saldos materializados:
	// el libro y los saldos son dos vistas del mismo estado.
	final := out.Movements[len(out.Movements)-1].RunningBalance
	total := whBalance(store, "prod-widget", whMainID).Add(whBalance(store, "prod-widget", whSecID))
	assert.True(t, final.Equal(total), "saldo corrido final %s vs saldos %s", final, total)
}

func TestGetItemMovements_ProductoInexistente(t *testing.T) {
	_, queryUC, _ := newQueryFixture(t)
	_, err := queryUC.GetItemMovements(tenantA, "GHOST", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListMovements_RangoDeFechasInvalido(t *testing.T) {
	_, queryUC, _ := newQueryFixture(t)
	_, err := queryUC.ListMovements(tenantA, dto.MovementFilter{From: "15-08-2026"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
