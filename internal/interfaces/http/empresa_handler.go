package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/application/usecase"
)

// EmpresaHandler maneja las peticiones HTTP para Empresa.
type EmpresaHandler struct {
	uc     *usecase.EmpresaUseCase
	tipoUC *usecase.TipoFormatoUseCase
}

// NewEmpresaHandler construye el handler.
func NewEmpresaHandler(uc *usecase.EmpresaUseCase, tipoUC *usecase.TipoFormatoUseCase) *EmpresaHandler {
	return &EmpresaHandler{uc: uc, tipoUC: tipoUC}
}

func (h *EmpresaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *EmpresaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

func (h *EmpresaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	return c.JSON(out)
}

func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina la empresa; si tiene registros relacionados el caso de uso
// la desactiva y aquí se responde 409.
func (h *EmpresaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Tipos lista los tipos de formato activos de la empresa.
func (h *EmpresaHandler) Tipos(c *fiber.Ctx) error {
	out, err := h.tipoUC.ListByEmpresa(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
