package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de inventario: ajustes manuales,
// libro de movimientos y reporte de stock bajo (protegido).
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Registra un ajuste in/out sobre un material o producto terminado, con su entrada en el libro. Un ajuste out no puede dejar stock negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "item_kind, item_id, type, qty"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Adjust(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_kind  query  string  false  "material | finished_good"
// @Param        ref_kind   query  string  false  "purchase | production | adjustment"
// @Param        from       query  string  false  "fecha inicial (RFC 3339)"
// @Param        to         query  string  false  "fecha final (RFC 3339)"
// @Param        limit      query  int     false  "máx 100, default 20"
// @Param        offset     query  int     false  "default 0"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	from, to, err := parseDateRange(c)
	if err != nil {
		return badBody(c)
	}
	list, err := h.uc.ListMovements(c.Context(), c.Query("item_kind"), c.Query("ref_kind"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListItemMovements godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_kind  path   string  true   "material | finished_good"
// @Param        item_id    path   string  true   "ID del ítem"
// @Param        from       query  string  false  "fecha inicial (RFC 3339)"
// @Param        to         query  string  false  "fecha final (RFC 3339)"
// @Param        limit      query  int     false  "máx 100, default 20"
// @Param        offset     query  int     false  "default 0"
// @Success      200  {array}  dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{item_kind}/{item_id} [get]
func (h *InventoryHandler) ListItemMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	from, to, err := parseDateRange(c)
	if err != nil {
		return badBody(c)
	}
	list, err := h.uc.ListItemMovements(c.Context(), c.Params("item_kind"), c.Params("item_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Materiales y productos activos con stock en o por debajo del mínimo configurado.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	resp, err := h.uc.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// parseDateRange lee los filtros from/to de la query en formato RFC 3339.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
