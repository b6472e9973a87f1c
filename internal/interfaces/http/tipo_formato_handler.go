package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/application/usecase"
)

// TipoFormatoHandler maneja las peticiones HTTP para TipoFormato.
type TipoFormatoHandler struct {
	uc *usecase.TipoFormatoUseCase
}

// NewTipoFormatoHandler construye el handler.
func NewTipoFormatoHandler(uc *usecase.TipoFormatoUseCase) *TipoFormatoHandler {
	return &TipoFormatoHandler{uc: uc}
}

func (h *TipoFormatoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTipoFormatoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" || in.EmpresaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y empresa_id son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *TipoFormatoHandler) List(c *fiber.Ctx) error {
	if empresaID := c.Query("empresa_id"); empresaID != "" {
		out, err := h.uc.ListByEmpresa(c.Context(), empresaID)
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

func (h *TipoFormatoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de formato no encontrado"})
	}
	return c.JSON(out)
}

func (h *TipoFormatoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTipoFormatoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

func (h *TipoFormatoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
