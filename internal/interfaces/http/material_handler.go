package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
)

// MaterialHandler maneja las peticiones HTTP del catálogo de materias primas (protegido).
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "datos del material; code vacío genera MAT-NNN"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
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
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active | inactive"
// @Param        limit   query  int     false  "máx 100, default 20"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {array}   dto.MaterialResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return notFound(c, "material no encontrado")
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar material
// @Description  Campos parciales. Stock y precio de compra no son editables: cambian vía compras y ajustes.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "campos a modificar"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del material"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
