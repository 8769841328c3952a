package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/purchasing"
)

// PurchaseHandler maneja las peticiones HTTP de órdenes de compra (protegido).
type PurchaseHandler struct {
	uc *purchasing.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  Crea la orden con sus líneas. Con status "received" la recepción se procesa en el acto: precio y stock de materiales más entradas del libro.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "orden con líneas"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
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
// @Summary      Listar órdenes de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft | submitted | received | cancelled"
// @Param        limit   query  int     false  "máx 100, default 20"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener orden de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return notFound(c, "orden de compra no encontrada")
	}
	return c.JSON(resp)
}

// Receive godoc
// @Summary      Recibir orden de compra
// @Description  Marca la orden como recibida: por cada línea sobreescribe el precio de compra del material, suma stock y registra la entrada en el libro. Una orden recibida o cancelada no se puede volver a recibir.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	if err := h.uc.Receive(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden recibida"})
}

// GetPDF godoc
// @Summary      PDF de la orden de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/pdf [get]
func (h *PurchaseHandler) GetPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GeneratePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", "inline; filename=orden-compra.pdf")
	return c.Send(pdfBytes)
}

// Delete godoc
// @Summary      Eliminar orden de compra
// @Description  Solo órdenes no recibidas: una recibida ya movió stock y precios.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
