package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

const testTenant = "tenant-test"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos por puerto
// ──────────────────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct {
	byCode map[string]*entity.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{byCode: make(map[string]*entity.Warehouse)}
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	r.byCode[w.TenantID+"|"+w.Code] = w
	return nil
}
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	for _, w := range r.byCode {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}
func (r *fakeWarehouseRepo) GetByCode(tenantID, code string) (*entity.Warehouse, error) {
	return r.byCode[tenantID+"|"+code], nil
}
func (r *fakeWarehouseRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.byCode {
		if w.TenantID == tenantID {
			list = append(list, w)
		}
	}
	return list, nil
}

type fakeProductRepo struct {
	bySKU map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{bySKU: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.bySKU[p.TenantID+"|"+p.SKU] = p
	return nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.bySKU {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) GetBySKU(tenantID, sku string) (*entity.Product, error) {
	return r.bySKU[tenantID+"|"+sku], nil
}
func (r *fakeProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.bySKU {
		if p.TenantID == tenantID {
			list = append(list, p)
		}
	}
	return list, nil
}

type fakeLocationRepo struct {
	byCode map[string]*entity.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byCode: make(map[string]*entity.Location)}
}

func (r *fakeLocationRepo) Create(l *entity.Location) error {
	r.byCode[l.TenantID+"|"+l.WarehouseID+"|"+l.Code] = l
	return nil
}
func (r *fakeLocationRepo) GetByCode(tenantID, warehouseID, code string) (*entity.Location, error) {
	return r.byCode[tenantID+"|"+warehouseID+"|"+code], nil
}
func (r *fakeLocationRepo) ListByWarehouse(tenantID, warehouseID string) ([]*entity.Location, error) {
	var list []*entity.Location
	for _, l := range r.byCode {
		if l.TenantID == tenantID && l.WarehouseID == warehouseID {
			list = append(list, l)
		}
	}
	return list, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// WarehouseUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseUseCase_CreateYGet(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())

	out, err := uc.Create(testTenant, dto.CreateWarehouseRequest{Code: "WH-MAIN", Name: "Principal", Address: "Calle 1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "WH-MAIN", out.Code)

	got, err := uc.GetByCode(testTenant, "WH-MAIN")
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

func TestWarehouseUseCase_CodigoDuplicado(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())
	_, err := uc.Create(testTenant, dto.CreateWarehouseRequest{Code: "WH-MAIN", Name: "Principal"})
	require.NoError(t, err)

	_, err = uc.Create(testTenant, dto.CreateWarehouseRequest{Code: "WH-MAIN", Name: "Otra"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "el código de bodega es único por tenant")
}

func TestWarehouseUseCase_CamposObligatorios(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())
	_, err := uc.Create(testTenant, dto.CreateWarehouseRequest{Code: "", Name: "Sin código"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWarehouseUseCase_GetInexistente(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())
	_, err := uc.GetByCode(testTenant, "WH-NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUseCase_CreateConFlagsDeTrazabilidad(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	out, err := uc.Create(testTenant, dto.CreateProductRequest{
		SKU: "WIDGET", Name: "Widget", UnitMeasure: "UND", TrackBatches: true,
	})
	require.NoError(t, err)
	assert.True(t, out.TrackBatches)
	assert.False(t, out.TrackSerials)

	got, err := uc.GetBySKU(testTenant, "WIDGET")
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

func TestProductUseCase_SKUDuplicado(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	_, err := uc.Create(testTenant, dto.CreateProductRequest{SKU: "WIDGET", Name: "Widget"})
	require.NoError(t, err)

	_, err = uc.Create(testTenant, dto.CreateProductRequest{SKU: "WIDGET", Name: "Otro"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

// ──────────────────────────────────────────────────────────────────────────────
// LocationUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationUseCase_CreateEnBodegaDelTenant(t *testing.T) {
	warehouses := newFakeWarehouseRepo()
	whUC := usecase.NewWarehouseUseCase(warehouses)
	wh, err := whUC.Create(testTenant, dto.CreateWarehouseRequest{Code: "WH-MAIN", Name: "Principal"})
	require.NoError(t, err)

	uc := usecase.NewLocationUseCase(newFakeLocationRepo(), warehouses)
	out, err := uc.Create(testTenant, wh.ID, dto.CreateLocationRequest{Code: "A-01", Name: "Estante A"})
	require.NoError(t, err)
	assert.Equal(t, wh.ID, out.WarehouseID)

	list, err := uc.ListByWarehouse(testTenant, wh.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A-01", list[0].Code)
}

func TestLocationUseCase_BodegaDeOtroTenant(t *testing.T) {
	warehouses := newFakeWarehouseRepo()
	whUC := usecase.NewWarehouseUseCase(warehouses)
	wh, err := whUC.Create("otro-tenant", dto.CreateWarehouseRequest{Code: "WH-X", Name: "Ajena"})
	require.NoError(t, err)

	uc := usecase.NewLocationUseCase(newFakeLocationRepo(), warehouses)
	_, err = uc.Create(testTenant, wh.ID, dto.CreateLocationRequest{Code: "A-01"})
	require.Error(t, err, "una bodega de otro tenant no es visible")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLocationUseCase_CodigoDuplicadoEnBodega(t *testing.T) {
	warehouses := newFakeWarehouseRepo()
	whUC := usecase.NewWarehouseUseCase(warehouses)
	wh, err := whUC.Create(testTenant, dto.CreateWarehouseRequest{Code: "WH-MAIN", Name: "Principal"})
	require.NoError(t, err)

	uc := usecase.NewLocationUseCase(newFakeLocationRepo(), warehouses)
	_, err = uc.Create(testTenant, wh.ID, dto.CreateLocationRequest{Code: "A-01"})
	require.NoError(t, err)

	_, err = uc.Create(testTenant, wh.ID, dto.CreateLocationRequest{Code: "A-01"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}
