package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
)

// respondError mapea los errores del dominio a respuestas HTTP.
// El caso especial es el stock insuficiente de producción: 422 con el detalle
// completo de faltantes para que el cliente muestre la lista, no solo el primero.
func respondError(c *fiber.Ctx, err error) error {
	if shortage, ok := domain.AsInsufficientStock(err); ok {
		resp := dto.InsufficientStockResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock de materiales insuficiente",
		}
		for _, s := range shortage.Shortages {
			resp.Insufficient = append(resp.Insufficient, dto.ShortageItemDTO{
				MaterialID:   s.MaterialID,
				MaterialName: s.MaterialName,
				Needed:       s.Needed.String(),
				Available:    s.Available.String(),
				Unit:         s.Unit,
			})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_USE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: message})
}
