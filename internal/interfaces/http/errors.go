package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
)

// responderError mapea los errores de dominio a códigos HTTP. Los handlers
// solo distinguen los casos con mensaje propio; el resto pasa por aquí.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrIntegridad):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INTEGRIDAD", Message: err.Error()})
	case errors.Is(err, domain.ErrSinDisponibles):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SIN_DISPONIBLES", Message: err.Error()})
	case errors.Is(err, domain.ErrConReferencias):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CON_REFERENCIAS", Message: err.Error()})
	case errors.Is(err, domain.ErrAlmacen):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ALMACEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
