package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
)

// RecipeHandler maneja las peticiones HTTP de recetas y costeo (protegido).
type RecipeHandler struct {
	uc *costing.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *costing.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear receta
// @Description  Crea la receta con sus líneas y recalcula el HPP del producto. Si nace activa, desactiva las demás recetas del producto.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "receta con líneas"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
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
// @Summary      Listar recetas
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx 100, default 20"
// @Param        offset  query  int  false  "default 0"
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener receta
// @Description  Incluye costo total y unitario recalculados con los precios de compra actuales.
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return notFound(c, "receta no encontrada")
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar receta
// @Description  Reemplaza cabecera y líneas, y recalcula el HPP del producto.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la receta"
// @Param        body  body  dto.UpdateRecipeRequest  true  "cabecera y líneas completas"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ToggleActive godoc
// @Summary      Alternar receta activa
// @Description  Activa o desactiva la receta. Al activar desactiva primero las demás recetas del producto (a lo sumo una activa). Recalcula el HPP.
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/toggle-active [post]
func (h *RecipeHandler) ToggleActive(c *fiber.Ctx) error {
	resp, err := h.uc.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar receta
// @Description  Elimina la receta y sus líneas. Si era la activa el producto vuelve a HPP = 0.
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la receta"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
