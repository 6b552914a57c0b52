package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// LocationUseCase alta y consulta de ubicaciones (bins) dentro de una bodega.
type LocationUseCase struct {
	repo       repository.LocationRepository
	warehouses repository.WarehouseRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, warehouses repository.WarehouseRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, warehouses: warehouses}
}

// Create crea una ubicación en la bodega indicada; el código es único por bodega.
func (uc *LocationUseCase) Create(tenantID, warehouseID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Code == "" {
		return nil, domain.Invalidf("code es obligatorio")
	}
	warehouse, err := uc.warehouses.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByCode(tenantID, warehouseID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	location := &entity.Location{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		Code:        in.Code,
		Name:        in.Name,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// ListByWarehouse lista las ubicaciones de una bodega.
func (uc *LocationUseCase) ListByWarehouse(tenantID, warehouseID string) ([]dto.LocationResponse, error) {
	warehouse, err := uc.warehouses.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByWarehouse(tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{ID: l.ID, WarehouseID: l.WarehouseID, Code: l.Code, Name: l.Name}
}
