package dto

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	UnitMeasure  string `json:"unit_measure,omitempty"`
	TrackBatches bool   `json:"track_batches"`
	TrackSerials bool   `json:"track_serials"`
}

// CreateLocationRequest body para POST /api/warehouses/:id/locations.
type CreateLocationRequest struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// WarehouseResponse representación de una bodega en respuestas.
type WarehouseResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID           string `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	UnitMeasure  string `json:"unit_measure,omitempty"`
	TrackBatches bool   `json:"track_batches"`
	TrackSerials bool   `json:"track_serials"`
	CreatedAt    string `json:"created_at"`
}

// LocationResponse representación de una ubicación en respuestas.
type LocationResponse struct {
	ID          string `json:"id"`
	WarehouseID string `json:"warehouse_id"`
	Code        string `json:"code"`
	Name        string `json:"name,omitempty"`
}
