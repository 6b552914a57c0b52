package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/stock"
)

// StockHandler maneja las peticiones HTTP del motor de movimientos y las
// consultas del libro de stock (protegido).
type StockHandler struct {
	movements *stock.CreateMovementUseCase
	queries   *stock.LedgerQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(movements *stock.CreateMovementUseCase, queries *stock.LedgerQueryUseCase) *StockHandler {
	return &StockHandler{movements: movements, queries: queries}
}

// CreateMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Registra un RECEIPT, ISSUE, TRANSFER o ADJUSTMENT multi-línea en
//               una sola transacción y devuelve el recibo con el número de comprobante.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "movement_type, warehouse_code (y to_warehouse_code para TRANSFER), items"
// @Success      201   {object}  dto.MovementReceipt
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.movements.CreateMovement(c.Context(), tenantID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// ListMovements godoc
// @Summary      Listar asientos del libro de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        movement_type   query  string  false  "RECEIPT | ISSUE | TRANSFER | ADJUSTMENT"
// @Param        warehouse_code  query  string  false  "Código de bodega"
// @Param        item_code       query  string  false  "SKU del producto"
// @Param        from            query  string  false  "Fecha inicial (2006-01-02, inclusive)"
// @Param        to              query  string  false  "Fecha final (2006-01-02, inclusive)"
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var f dto.MovementFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.queries.ListMovements(tenantID, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSummary godoc
// @Summary      Resumen del libro por tipo de comprobante
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (2006-01-02, inclusive)"
// @Param        to    query  string  false  "Fecha final (2006-01-02, inclusive)"
// @Success      200  {object}  map[string]dto.VoucherTypeSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/summary [get]
func (h *StockHandler) GetSummary(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var r dto.SummaryRange
	if err := c.QueryParser(&r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.queries.GetSummary(tenantID, r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetItemMovements godoc
// @Summary      Historial de movimientos de un producto con saldo corrido
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        sku    path   string  true   "SKU del producto"
// @Param        limit  query  int     false  "Límite"  default(100)
// @Success      200  {object}  dto.ItemMovementsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{sku}/movements [get]
func (h *StockHandler) GetItemMovements(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	limit := c.QueryInt("limit", 100)
	out, err := h.queries.GetItemMovements(tenantID, sku, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
