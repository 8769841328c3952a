package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/production"
)

// ProductionHandler maneja las peticiones HTTP de producciones (protegido).
type ProductionHandler struct {
	uc *production.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producción
// @Description  Crea la corrida a partir de una receta: rendimiento y costos se derivan de la receta al momento de crear. Con status "completed" el procesamiento de stock corre en el acto.
// @Tags         productions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionRequest  true  "recipe_id, batch_qty y status"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.InsufficientStockResponse
// @Router       /api/productions [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar producciones
// @Tags         productions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft | processing | completed | cancelled"
// @Param        limit   query  int     false  "máx 100, default 20"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {array}  dto.ProductionResponse
// @Router       /api/productions [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener producción
// @Tags         productions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la producción"
// @Success      200  {object}  dto.ProductionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productions/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return notFound(c, "producción no encontrada")
	}
	return c.JSON(resp)
}

// CheckStock godoc
// @Summary      Verificar stock de materiales
// @Description  Verifica sin mutar nada si el stock alcanza para completar. Devuelve todos los faltantes.
// @Tags         productions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la producción"
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productions/{id}/check-stock [get]
func (h *ProductionHandler) CheckStock(c *fiber.Ctx) error {
	resp, err := h.uc.CheckMaterialStock(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Complete godoc
// @Summary      Completar producción
// @Description  Verifica stock con las filas bloqueadas, descuenta materiales, suma el producto terminado y registra las entradas del libro, todo en una transacción. Con faltantes responde 422 con la lista completa y no muta nada.
// @Tags         productions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la producción"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.InsufficientStockResponse
// @Router       /api/productions/{id}/complete [post]
func (h *ProductionHandler) Complete(c *fiber.Ctx) error {
	if err := h.uc.Complete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producción completada"})
}

// Cancel godoc
// @Summary      Cancelar producción
// @Description  Estado final sin efecto en stock. Una producción completada o ya cancelada no se puede cancelar.
// @Tags         productions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la producción"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/productions/{id}/cancel [post]
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producción cancelada"})
}

// Delete godoc
// @Summary      Eliminar producción
// @Description  Solo producciones no completadas: una completada es parte del rastro del libro.
// @Tags         productions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la producción"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/productions/{id} [delete]
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
