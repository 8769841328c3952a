package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos (protegido).
// Expone también las recetas del producto.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	recipeUC *costing.RecipeUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, recipeUC *costing.RecipeUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, recipeUC: recipeUC}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "datos del producto; code vacío genera PRD-NNN"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active | inactive"
// @Param        limit   query  int     false  "máx 100, default 20"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Campos parciales. Cambiar selling_price recalcula los márgenes con el HPP cacheado.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
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
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRecipes godoc
// @Summary      Listar recetas de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/products/{id}/recipes [get]
func (h *ProductHandler) ListRecipes(c *fiber.Ctx) error {
	list, err := h.recipeUC.ListByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
